package cli

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

var errUsage = errors.New("usage")

// readFile is a test seam for os.ReadFile.
var readFile = os.ReadFile

func isPublicArg(args []string, i int) bool {
	return len(args) > i && args[i] == "public"
}

// kindOf guesses the API file type from the extension.
func kindOf(path string) string {
	if strings.HasPrefix(mime.TypeByExtension(filepath.Ext(path)), "image/") {
		return "image"
	}
	return "file"
}

func (a *App) Mkdir(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: mkdir <name> [public]", errUsage)
	}

	f, err := a.api.CreateFolder(ctx, args[0], a.parentArg())
	if err != nil {
		return err
	}
	if isPublicArg(args, 1) {
		if f, err = a.api.SetPublic(ctx, f.ID, true); err != nil {
			return err
		}
	}

	fmt.Fprintf(a.out, "Created folder %s (%s)\n", f.Name, f.ID)
	return nil
}

func (a *App) Upload(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: upload <path> [public]", errUsage)
	}

	data, err := readFile(args[0])
	if err != nil {
		return err
	}

	f, err := a.api.Upload(ctx, filepath.Base(args[0]), kindOf(args[0]), a.parentArg(), isPublicArg(args, 1), data)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Uploaded %s as %s (%s)\n", f.Name, f.Type, f.ID)
	return nil
}

func (a *App) List(ctx context.Context, args []string) error {
	page := 0
	if len(args) > 0 {
		p, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("%w: ls [page]", errUsage)
		}
		page = p
	}

	files, err := a.api.List(ctx, a.currentFolder(), page)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintln(a.out, "(empty)")
		return nil
	}

	for _, f := range files {
		visibility := "private"
		if f.IsPublic {
			visibility = "public"
		}
		fmt.Fprintf(a.out, "%-36s  %-6s  %-7s  %s\n", f.ID, f.Type, visibility, f.Name)
	}
	return nil
}

// Cd moves into a folder by id; ".." goes up one level and "/" to the root.
func (a *App) Cd(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: cd <folder id>|..|/", errUsage)
	}

	switch args[0] {
	case "/":
		a.path = nil
		return nil
	case "..":
		if len(a.path) > 0 {
			a.path = a.path[:len(a.path)-1]
		}
		return nil
	}

	f, err := a.api.Get(ctx, args[0])
	if err != nil {
		return err
	}
	if !f.IsFolder() {
		return fmt.Errorf("%s is not a folder", f.Name)
	}

	a.path = append(a.path, folder{id: f.ID, name: f.Name})
	return nil
}

func (a *App) Info(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: info <id>", errUsage)
	}

	f, err := a.api.Get(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "id:       %s\nname:     %s\ntype:     %s\nparent:   %s\npublic:   %t\n",
		f.ID, f.Name, f.Type, f.ParentID, f.IsPublic)
	return nil
}

func (a *App) Publish(ctx context.Context, args []string) error {
	return a.setPublic(ctx, args, true)
}

func (a *App) Unpublish(ctx context.Context, args []string) error {
	return a.setPublic(ctx, args, false)
}

func (a *App) setPublic(ctx context.Context, args []string, public bool) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: publish|unpublish <id>", errUsage)
	}

	f, err := a.api.SetPublic(ctx, args[0], public)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s public=%t\n", f.Name, f.IsPublic)
	return nil
}

// Get downloads a file, or one of its thumbnails when a width is given.
func (a *App) Get(ctx context.Context, args []string) (err error) {
	if len(args) < 2 {
		return fmt.Errorf("%w: get <id> <destination> [500|250|100]", errUsage)
	}

	size := ""
	if len(args) > 2 {
		size = args[2]
	}

	out, err := os.Create(args[1])
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			_ = os.Remove(args[1])
		}
	}()

	contentType, err := a.api.Download(ctx, args[0], size, out)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Saved %s (%s)\n", args[1], contentType)
	return nil
}

// parentArg is the parentId sent on create; the root is left implicit.
func (a *App) parentArg() string {
	if len(a.path) == 0 {
		return ""
	}
	return a.currentFolder()
}
