// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package minio implements blobstore.BlobStore on MinIO and other
// S3-compatible object stores.
package minio
