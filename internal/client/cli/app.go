package cli

import (
	"bufio"
	"context"
	"io"
	"os"
	"strings"

	"github.com/dmitrijs2005/filesmanager/internal/client/client"
	"github.com/dmitrijs2005/filesmanager/internal/client/config"
	"github.com/dmitrijs2005/filesmanager/internal/common"
	"github.com/dmitrijs2005/filesmanager/internal/filex"
)

// API is the part of client.APIClient the commands use.
type API interface {
	SetToken(token string)
	Register(ctx context.Context, email string, password []byte) (client.User, error)
	Connect(ctx context.Context, email string, password []byte) (string, error)
	Disconnect(ctx context.Context) error
	Me(ctx context.Context) (client.User, error)
	CreateFolder(ctx context.Context, name, parentID string) (client.File, error)
	Upload(ctx context.Context, name, kind, parentID string, isPublic bool, data []byte) (client.File, error)
	List(ctx context.Context, parentID string, page int) ([]client.File, error)
	Get(ctx context.Context, id string) (client.File, error)
	SetPublic(ctx context.Context, id string, public bool) (client.File, error)
	Download(ctx context.Context, id, size string, w io.Writer) (string, error)
}

type folder struct {
	id   string
	name string
}

type App struct {
	api         API
	sessionFile string
	token       string
	path        []folder
	reader      *bufio.Reader
	out         io.Writer
}

func NewApp(c *config.Config) *App {
	return &App{
		api:         client.NewAPIClient(c.ServerURL, c.RequestTimeout),
		sessionFile: c.SessionFile,
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
	}
}

// Run restores a saved session, if any, and starts the REPL on stdin.
func (a *App) Run(ctx context.Context) {
	a.restoreSession()
	runREPL(ctx, a, a.getStatus, bufio.NewScanner(a.reader))
}

func (a *App) isLoggedIn() bool {
	return a.token != ""
}

func (a *App) setToken(token string) {
	a.token = token
	a.api.SetToken(token)
}

func (a *App) restoreSession() {
	data, err := os.ReadFile(a.sessionFile)
	if err != nil {
		return
	}
	a.setToken(strings.TrimSpace(string(data)))
}

func (a *App) saveSession() error {
	return filex.WriteFileAtomic(a.sessionFile, []byte(a.token), 0o600)
}

func (a *App) clearSession() {
	a.setToken("")
	a.path = nil
	if err := os.Remove(a.sessionFile); err != nil && !filex.IsNotExist(err) {
		printlnFn("could not remove session file:", err.Error())
	}
}

// currentFolder returns the id of the folder commands operate in.
func (a *App) currentFolder() string {
	if len(a.path) == 0 {
		return common.RootParentID
	}
	return a.path[len(a.path)-1].id
}

func (a *App) getStatus() string {
	if !a.isLoggedIn() {
		return "(anonymous)"
	}
	var b strings.Builder
	b.WriteString("/")
	for i, f := range a.path {
		if i > 0 {
			b.WriteString("/")
		}
		b.WriteString(f.name)
	}
	return b.String()
}
