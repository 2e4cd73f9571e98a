package services

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"

	"github.com/dmitrijs2005/filesmanager/internal/common"
	"github.com/dmitrijs2005/filesmanager/internal/dbx"
	"github.com/dmitrijs2005/filesmanager/internal/server/models"
	filesrepo "github.com/dmitrijs2005/filesmanager/internal/server/repositories/files"
	usersrepo "github.com/dmitrijs2005/filesmanager/internal/server/repositories/users"
)

// --- in-memory repositories ---

type fakeFilesRepo struct {
	mu      sync.Mutex
	recs    map[string]*models.FileRecord
	seq     int64
	err     error
	insErr  error
	inserts int
}

func newFakeFilesRepo() *fakeFilesRepo {
	return &fakeFilesRepo{recs: map[string]*models.FileRecord{}}
}

func (f *fakeFilesRepo) put(rec models.FileRecord) *models.FileRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	rec.Seq = f.seq
	f.recs[rec.ID] = &rec
	return &rec
}

func (f *fakeFilesRepo) FindByID(_ context.Context, id string) (*models.FileRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	rec, ok := f.recs[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *rec
	return &cp, nil
}

func (f *fakeFilesRepo) FindByIDAndOwner(ctx context.Context, id, userID string) (*models.FileRecord, error) {
	rec, err := f.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.UserID != userID {
		return nil, common.ErrorNotFound
	}
	return rec, nil
}

func (f *fakeFilesRepo) Insert(_ context.Context, rec *models.FileRecord) (*models.FileRecord, error) {
	f.mu.Lock()
	f.inserts++
	if f.insErr != nil {
		f.mu.Unlock()
		return nil, f.insErr
	}
	f.mu.Unlock()
	if rec.ID == "" {
		rec.ID = fmt.Sprintf("id-%d", f.inserts)
	}
	saved := f.put(*rec)
	cp := *saved
	return &cp, nil
}

func (f *fakeFilesRepo) UpdateIsPublic(_ context.Context, id, userID string, value bool) (*models.FileRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	rec, ok := f.recs[id]
	if !ok || rec.UserID != userID {
		return nil, common.ErrorNotFound
	}
	rec.IsPublic = value
	cp := *rec
	return &cp, nil
}

func (f *fakeFilesRepo) FindChildren(_ context.Context, userID, parentID string, skip, limit int) ([]*models.FileRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var all []*models.FileRecord
	for _, r := range f.recs {
		if r.UserID == userID && r.ParentID == parentID {
			cp := *r
			all = append(all, &cp)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Seq < all[j].Seq })

	out := []*models.FileRecord{}
	for i := skip; i < len(all) && len(out) < limit; i++ {
		out = append(out, all[i])
	}
	return out, nil
}

func (f *fakeFilesRepo) Count(context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	return int64(len(f.recs)), nil
}

type fakeUsersRepo struct {
	mu      sync.Mutex
	byEmail map[string]*models.User
	err     error
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byEmail: map[string]*models.User{}}
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if _, ok := f.byEmail[u.Email]; ok {
		return nil, common.ErrAlreadyExists
	}
	u.ID = fmt.Sprintf("u-%d", len(f.byEmail)+1)
	f.byEmail[u.Email] = u
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func (f *fakeUsersRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) Count(context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	return int64(len(f.byEmail)), nil
}

type fakeRepoManager struct {
	files *fakeFilesRepo
	users *fakeUsersRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{files: newFakeFilesRepo(), users: newFakeUsersRepo()}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) usersrepo.Repository          { return m.users }
func (m *fakeRepoManager) Files(dbx.DBTX) filesrepo.Repository          { return m.files }

// --- collaborators ---

type fakeBlobs struct {
	path  string
	err   error
	calls int
}

func (f *fakeBlobs) Write(_ context.Context, _ string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.path, nil
}

type fakeQueue struct {
	mu   sync.Mutex
	jobs []models.ThumbnailJob
	err  error
}

func (f *fakeQueue) Enqueue(_ context.Context, job models.ThumbnailJob) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.jobs = append(f.jobs, job)
	return nil
}

type fakeSessions struct {
	tokens    map[string]string
	createErr error
}

func newFakeSessions() *fakeSessions { return &fakeSessions{tokens: map[string]string{}} }

func (f *fakeSessions) Create(_ context.Context, userID string) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	tok := "tok-" + userID
	f.tokens[tok] = userID
	return tok, nil
}

func (f *fakeSessions) Resolve(_ context.Context, token string) (string, error) {
	uid, ok := f.tokens[token]
	if !ok {
		return "", common.ErrorUnauthorized
	}
	return uid, nil
}

func (f *fakeSessions) Revoke(_ context.Context, token string) error {
	delete(f.tokens, token)
	return nil
}
