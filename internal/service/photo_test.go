package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/pageza/freshkeep/backend/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePresigner struct {
	uploads []string
	err     error
}

func (f *fakePresigner) PresignUpload(ctx context.Context, key, contentType string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.uploads = append(f.uploads, key)
	return "https://bucket.example.com/" + key + "?X-Amz-Signature=put", nil
}

func (f *fakePresigner) PresignDownload(ctx context.Context, key string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "https://bucket.example.com/" + key + "?X-Amz-Signature=get", nil
}

func TestPhotoUploadAndDownload(t *testing.T) {
	inventory := newTestInventoryService(t)
	storage := &fakePresigner{}
	svc := NewPhotoService(storage, inventory)
	ctx := context.Background()
	userID := uuid.New()
	item := addItem(t, inventory, userID, "Basil", 2)

	_, err := svc.DownloadURL(ctx, userID, item.ID)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)

	up, err := svc.UploadURL(ctx, userID, item.ID, "image/png")
	require.NoError(t, err)
	prefix := "items/" + userID.String() + "/" + item.ID.String() + "/"
	assert.True(t, strings.HasPrefix(up.Key, prefix), up.Key)
	assert.True(t, strings.HasSuffix(up.Key, ".png"), up.Key)
	assert.Contains(t, up.URL, "X-Amz-Signature=put")

	down, err := svc.DownloadURL(ctx, userID, item.ID)
	require.NoError(t, err)
	assert.Equal(t, up.Key, down.Key)
	assert.Contains(t, down.URL, "X-Amz-Signature=get")

	// other users cannot reach the item
	_, err = svc.UploadURL(ctx, uuid.New(), item.ID, "")
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
	assert.Len(t, storage.uploads, 1)
}

func TestPhotoErrors(t *testing.T) {
	inventory := newTestInventoryService(t)
	ctx := context.Background()
	userID := uuid.New()
	item := addItem(t, inventory, userID, "Basil", 2)

	var appErr *apperrors.AppError

	_, err := NewPhotoService(nil, inventory).UploadURL(ctx, userID, item.ID, "")
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeServiceUnavailable, appErr.Code)

	_, err = NewPhotoService(&fakePresigner{}, inventory).UploadURL(ctx, userID, item.ID, "image/gif")
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeBadRequest, appErr.Code)

	_, err = NewPhotoService(&fakePresigner{err: errors.New("no credentials")}, inventory).UploadURL(ctx, userID, item.ID, "")
	require.Error(t, err)
	assert.False(t, errors.As(err, &appErr))
}

func TestPhotoKey(t *testing.T) {
	user := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	item := uuid.MustParse("22222222-2222-2222-2222-222222222222")
	photo := uuid.MustParse("33333333-3333-3333-3333-333333333333")
	assert.Equal(t,
		"items/11111111-1111-1111-1111-111111111111/22222222-2222-2222-2222-222222222222/33333333-3333-3333-3333-333333333333.jpg",
		PhotoKey(user, item, photo, "jpg"))
}
