// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package s3 implements blobstore.BlobStore on Amazon S3.
//
// Reads stream GetObject bodies. Writes are piped into the SDK's multipart
// upload manager, so arrays larger than one part are uploaded in parallel
// without buffering the whole file.
//
//	store, err := s3.NewFromConfig(ctx, "my-bucket", "arrays/")
//	if err != nil {
//	    return err
//	}
//	err = npy.Save(ctx, store, "x.npy", data, npy.Float32, npy.Shape{3, 4})
package s3
