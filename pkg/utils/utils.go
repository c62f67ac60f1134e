package utils

import (
	"crypto/rand"
	"errors"
	"mime/multipart"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

type IUtils interface {
	NewULIDFromTimestamp(t time.Time) (string, error)
	NewInviteCode() (string, error)
	ValidateImageFile(file *multipart.FileHeader) error
}

type utils struct {
	maxFileSize int64
}

func New() IUtils {
	return &utils{
		maxFileSize: 5 * 1024 * 1024,
	}
}

func (u *utils) NewULIDFromTimestamp(t time.Time) (string, error) {
	ms := ulid.Timestamp(t)
	entropy := ulid.Monotonic(rand.Reader, 0)

	id, err := ulid.New(ms, entropy)
	if err != nil {
		return "", err
	}

	return id.String(), nil
}

// inviteAlphabet skips ambiguous characters (0/O, 1/I/L) so codes
// survive being read aloud between partners.
const inviteAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

func (u *utils) NewInviteCode() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	code := make([]byte, 8)
	for i, b := range buf {
		code[i] = inviteAlphabet[int(b)%len(inviteAlphabet)]
	}

	return string(code[:4]) + "-" + string(code[4:]), nil
}

func (u *utils) ValidateImageFile(file *multipart.FileHeader) error {
	if file == nil {
		return errors.New("no file uploaded")
	}

	if file.Size > u.maxFileSize {
		return errors.New("file size exceeds limit")
	}

	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return errors.New("uploaded file is not an image")
	}

	return nil
}
