package mocks

import (
	"context"

	"github.com/realchief/RenderShotPanel/internal/storage/rendershare"
	"github.com/stretchr/testify/mock"
)

type StorageMock struct {
	mock.Mock
}

func (m *StorageMock) FileMetadata(ctx context.Context, path string) (*rendershare.FileMeta, error) {
	args := m.Called(ctx, path)

	meta, _ := args.Get(0).(*rendershare.FileMeta)
	return meta, args.Error(1)
}

func (m *StorageMock) DownloadLink(ctx context.Context, path string) (string, error) {
	args := m.Called(ctx, path)
	return args.String(0), args.Error(1)
}

func (m *StorageMock) OutputLink(ctx context.Context, username, jobName string) (string, error) {
	args := m.Called(ctx, username, jobName)
	return args.String(0), args.Error(1)
}

func (m *StorageMock) ListSourceFiles(ctx context.Context, username string, exts []string) ([]rendershare.FileMeta, error) {
	args := m.Called(ctx, username, exts)

	files, _ := args.Get(0).([]rendershare.FileMeta)
	return files, args.Error(1)
}

func (m *StorageMock) CheckLink(ctx context.Context, link string) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}
