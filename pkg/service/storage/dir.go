package storage

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/markclong/slack-archiver/pkg/domain/types"
)

const (
	databaseFile = "slack.db"

	avatarDir = "avatars"
	fileDir   = "files"
	emojiDir  = "emojis"
)

// Dir maps archive entities to locations under a single data directory.
// Every method returns both the absolute destination for downloads and
// the relative path recorded in the database. Relative paths always use
// forward slashes so they stay valid as URLs when served back.
type Dir struct {
	root string
}

func New(root string) Dir {
	return Dir{root: root}
}

func (d Dir) Root() string {
	return d.root
}

// DatabasePath returns the location of the SQLite database file.
func (d Dir) DatabasePath() string {
	return filepath.Join(d.root, databaseFile)
}

// Ensure creates the data directory and the asset buckets inside it.
func (d Dir) Ensure() error {
	for _, sub := range []string{"", avatarDir, fileDir, emojiDir} {
		dir := filepath.Join(d.root, sub)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return goerr.Wrap(err, "failed to create data directory", goerr.V("dir", dir))
		}
	}
	return nil
}

// Avatar returns the paths for a user avatar. Avatars are always stored
// as JPEG regardless of the source image.
func (d Dir) Avatar(userID types.UserID) (string, string) {
	rel := path.Join(avatarDir, userID.String()+".jpg")
	return filepath.Join(d.root, filepath.FromSlash(rel)), rel
}

// Attachment returns the paths for a shared file. The file keeps the
// extension of its declared name, which may be empty.
func (d Dir) Attachment(fileID types.FileID, name string) (string, string) {
	rel := path.Join(fileDir, fileID.String()+path.Ext(name))
	return filepath.Join(d.root, filepath.FromSlash(rel)), rel
}

// Emoji returns the paths for a custom emoji image. The extension comes
// from the source URL with any query string stripped, falling back to
// PNG when the URL has none.
func (d Dir) Emoji(name types.EmojiName, url string) (string, string) {
	rel := path.Join(emojiDir, name.String()+emojiExt(url))
	return filepath.Join(d.root, filepath.FromSlash(rel)), rel
}

func emojiExt(url string) string {
	trimmed, _, _ := strings.Cut(url, "?")
	if ext := path.Ext(trimmed); ext != "" {
		return ext
	}
	return ".png"
}
