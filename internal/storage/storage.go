// Package storage delegates event image uploads to object storage.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/Shivanand-hulikatti/event-organizer/internal/model"
	"github.com/google/uuid"
	storage_go "github.com/supabase-community/storage-go"
	"github.com/supabase-community/supabase-go"
)

// File is an uploaded image as received from the client.
type File struct {
	Name        string
	ContentType string
	Body        io.Reader
}

// Uploader stores an event image and reports where it can be fetched.
// Failures are reported in the result, never as a Go error.
type Uploader interface {
	UploadEventImage(ctx context.Context, file File, eventID string) model.UploadResult
}

// objectClient is the subset of the Supabase storage client in use.
type objectClient interface {
	UploadFile(bucketID string, relativePath string, data io.Reader, fileOptions ...storage_go.FileOptions) (storage_go.FileUploadResponse, error)
	GetPublicUrl(bucketID string, filePath string, urlOptions ...storage_go.UrlOptions) storage_go.SignedUrlResponse
}

// SupabaseUploader writes images into a Supabase Storage bucket.
type SupabaseUploader struct {
	client objectClient
	bucket string
}

// NewSupabaseUploader builds an uploader for the given project and bucket.
func NewSupabaseUploader(projectURL, apiKey, bucket string) (*SupabaseUploader, error) {
	client, err := supabase.NewClient(projectURL, apiKey, nil)
	if err != nil {
		return nil, fmt.Errorf("create supabase client: %w", err)
	}
	return &SupabaseUploader{client: client.Storage, bucket: bucket}, nil
}

// UploadEventImage stores the file under events/<eventID>/ (or
// events/unassigned/ when no event is given) with a random name.
func (u *SupabaseUploader) UploadEventImage(ctx context.Context, file File, eventID string) model.UploadResult {
	if file.Body == nil {
		return model.UploadResult{Success: false, Error: "no file provided"}
	}

	objectPath := ObjectPath(eventID, file.Name)
	upsert := false
	opts := storage_go.FileOptions{Upsert: &upsert}
	if file.ContentType != "" {
		ct := file.ContentType
		opts.ContentType = &ct
	}

	if _, err := u.client.UploadFile(u.bucket, objectPath, file.Body, opts); err != nil {
		return model.UploadResult{Success: false, Error: err.Error()}
	}

	public := u.client.GetPublicUrl(u.bucket, objectPath)
	return model.UploadResult{Success: true, URL: public.SignedURL}
}

// ObjectPath returns the bucket-relative key for an uploaded image.
func ObjectPath(eventID, fileName string) string {
	folder := eventID
	if folder == "" {
		folder = "unassigned"
	}
	ext := strings.ToLower(path.Ext(fileName))
	return path.Join("events", folder, uuid.NewString()+ext)
}

// DisabledUploader is used when no object storage is configured.
type DisabledUploader struct{}

// UploadEventImage always fails.
func (DisabledUploader) UploadEventImage(ctx context.Context, file File, eventID string) model.UploadResult {
	return model.UploadResult{Success: false, Error: "image storage is not configured"}
}
