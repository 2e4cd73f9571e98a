package api

import (
	"context"

	"github.com/dmitrijs2005/filesmanager/internal/common"
	"github.com/dmitrijs2005/filesmanager/internal/server/models"
	"github.com/dmitrijs2005/filesmanager/internal/server/services"
)

type fakeFiles struct {
	created   *models.FileRecord
	createErr error
	lastIn    services.CreateFileInput
	lastUser  string

	file    *models.FileRecord
	fileErr error

	list       []*models.FileRecord
	listErr    error
	lastPage   int
	lastParent string

	public    *models.FileRecord
	publicErr error
	lastValue bool

	content    *services.Content
	contentErr error
	lastSize   string
}

func (f *fakeFiles) CreateFile(_ context.Context, userID string, in services.CreateFileInput) (*models.FileRecord, error) {
	f.lastUser, f.lastIn = userID, in
	return f.created, f.createErr
}

func (f *fakeFiles) GetFile(_ context.Context, userID, _ string) (*models.FileRecord, error) {
	f.lastUser = userID
	return f.file, f.fileErr
}

func (f *fakeFiles) ListFiles(_ context.Context, userID, parentID string, page int) ([]*models.FileRecord, error) {
	f.lastUser, f.lastParent, f.lastPage = userID, parentID, page
	return f.list, f.listErr
}

func (f *fakeFiles) SetPublic(_ context.Context, userID, _ string, value bool) (*models.FileRecord, error) {
	f.lastUser, f.lastValue = userID, value
	return f.public, f.publicErr
}

func (f *fakeFiles) ResolveContent(_ context.Context, userID, _, size string) (*services.Content, error) {
	f.lastUser, f.lastSize = userID, size
	return f.content, f.contentErr
}

type fakeUsers struct {
	tokens  map[string]string
	authErr error

	registered  *models.User
	registerErr error

	connectToken string
	connectErr   error
	lastEmail    string
	lastPassword string

	disconnected []string

	me    *models.User
	meErr error

	stats    *services.Stats
	statsErr error
}

func (f *fakeUsers) Register(_ context.Context, email, password string) (*models.User, error) {
	f.lastEmail, f.lastPassword = email, password
	return f.registered, f.registerErr
}

func (f *fakeUsers) Connect(_ context.Context, email, password string) (string, error) {
	f.lastEmail, f.lastPassword = email, password
	return f.connectToken, f.connectErr
}

func (f *fakeUsers) Disconnect(ctx context.Context, token string) error {
	if _, err := f.Authenticate(ctx, token); err != nil {
		return err
	}
	f.disconnected = append(f.disconnected, token)
	return nil
}

func (f *fakeUsers) Authenticate(_ context.Context, token string) (string, error) {
	if f.authErr != nil {
		return "", f.authErr
	}
	uid, ok := f.tokens[token]
	if !ok {
		return "", common.ErrorUnauthorized
	}
	return uid, nil
}

func (f *fakeUsers) Me(context.Context, string) (*models.User, error) {
	return f.me, f.meErr
}

func (f *fakeUsers) Stats(context.Context) (*services.Stats, error) {
	return f.stats, f.statsErr
}

type fakeStatus struct {
	st services.Status
}

func (f fakeStatus) Status(context.Context) services.Status { return f.st }
