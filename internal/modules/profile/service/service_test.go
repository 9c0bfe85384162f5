package service

import (
	"bytes"
	"context"
	"io"
	"testing"

	"anoa.com/livestockhub/internal/entity"
	profileDto "anoa.com/livestockhub/internal/modules/profile/dto"
	profileRepo "anoa.com/livestockhub/internal/modules/profile/repository"
	userRepo "anoa.com/livestockhub/internal/modules/user/repository"
	"anoa.com/livestockhub/internal/testutil"
	commonDto "anoa.com/livestockhub/pkg/dto"
	"anoa.com/livestockhub/pkg/storage"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStorage struct {
	uploads map[string][]byte
}

func (m *memoryStorage) UploadImage(_ context.Context, r io.Reader, folder, fileName string) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	url := "https://cdn.test/" + folder + "/" + fileName
	m.uploads[url] = b
	return url, nil
}

func (m *memoryStorage) DeleteImage(_ context.Context, url string) error {
	delete(m.uploads, url)
	return nil
}

func strPtr(s string) *string { return &s }

func TestUpdateProfile(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := testutil.CreateUser(t, db, "meena@example.com", false, entity.RoleFarmer)
	svc := NewProfileService(userRepo.NewUserRepository(db), profileRepo.NewProfileRepository(db), nil)

	res, err := svc.UpdateProfile(context.Background(), user.ID, profileDto.UpdateProfileInput{
		FullName: strPtr("  <b>Meena</b> Devi "),
		District: strPtr("Pune"),
		Phone:    strPtr("9876543210"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Meena Devi", res.Profile.FullName)
	assert.Equal(t, "Pune", *res.Profile.District)
	assert.Equal(t, []entity.Role{entity.RoleFarmer}, res.Roles)

	_, err = svc.UpdateProfile(context.Background(), uuid.New(), profileDto.UpdateProfileInput{})
	assert.Error(t, err)
}

func TestUploadAvatar(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := testutil.CreateUser(t, db, "avatar@example.com", true, entity.RoleFarmer)
	file := commonDto.UploadFile{Reader: bytes.NewBufferString("png"), FileName: "me.png"}

	_, err := NewProfileService(userRepo.NewUserRepository(db), profileRepo.NewProfileRepository(db), nil).
		UploadAvatar(context.Background(), user.ID, file)
	assert.ErrorIs(t, err, storage.ErrNotConfigured)

	store := &memoryStorage{uploads: map[string][]byte{}}
	svc := NewProfileService(userRepo.NewUserRepository(db), profileRepo.NewProfileRepository(db), store)
	res, err := svc.UploadAvatar(context.Background(), user.ID, file)
	require.NoError(t, err)
	require.NotNil(t, res.AvatarURL)
	assert.Equal(t, "https://cdn.test/avatars/me.png", *res.AvatarURL)
}
