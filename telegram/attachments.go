package telegram

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/edouard/telewire/internal/platform"
)

const (
	nameAlphabet    = "abcdefghijklmnopqrstuvwxyz0123456789"
	nameLength      = 12
	maxNameAttempts = 32
)

var validAttachName = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// Replaceable for testing.
var (
	newAttachName = func() (string, error) { return gonanoid.Generate(nameAlphabet, nameLength) }
	resolveUpload = platform.ResolveUpload
	detectMIME    = func(path string) (string, error) {
		m, err := mimetype.DetectFile(path)
		if err != nil {
			return "", err
		}
		return m.String(), nil
	}
)

// Attachments binds local files to multipart part names for one request.
// Names are unique within the registry. It is not safe for concurrent use
// and must not be shared between requests.
type Attachments struct {
	root  string
	names []string
	paths map[string]string
}

// NewAttachments returns an empty registry. A non-empty root confines every
// attached path to that directory.
func NewAttachments(root string) *Attachments {
	return &Attachments{root: root, paths: make(map[string]string)}
}

// Attach registers path under a freshly generated name.
func (a *Attachments) Attach(path string) (InputFile, error) {
	for range maxNameAttempts {
		name, err := newAttachName()
		if err != nil {
			return InputFile{}, fmt.Errorf("telegram: attach %q: %w", path, err)
		}
		if _, taken := a.paths[name]; taken {
			continue
		}
		return a.AttachAs(name, path)
	}
	return InputFile{}, fmt.Errorf("telegram: attach %q: %d names tried: %w", path, maxNameAttempts, ErrAttachmentNames)
}

// AttachAs registers path under name. Reusing a name is an error; two
// local files never share a wire name.
func (a *Attachments) AttachAs(name, path string) (InputFile, error) {
	if !validAttachName.MatchString(name) {
		return InputFile{}, fmt.Errorf("%w: %q", ErrInvalidAttachmentName, name)
	}
	if _, taken := a.paths[name]; taken {
		return InputFile{}, fmt.Errorf("%w: %q", ErrDuplicateAttachment, name)
	}
	resolved, err := resolveUpload(a.root, path)
	if err != nil {
		return InputFile{}, fmt.Errorf("telegram: attach %q: %w", name, err)
	}
	if a.paths == nil {
		a.paths = make(map[string]string)
	}
	a.names = append(a.names, name)
	a.paths[name] = resolved
	return InputFile{attach: name}, nil
}

// Len is the number of bindings. A nil registry is empty.
func (a *Attachments) Len() int {
	if a == nil {
		return 0
	}
	return len(a.names)
}

// Names returns the attachment names in registration order.
func (a *Attachments) Names() []string {
	if a == nil {
		return nil
	}
	return append([]string(nil), a.names...)
}

// Path returns the resolved local path bound to name.
func (a *Attachments) Path(name string) (string, bool) {
	if a == nil {
		return "", false
	}
	p, ok := a.paths[name]
	return p, ok
}

// bind writes every binding as its own part, keyed by attachment name, so
// attach://<name> references in the other fields resolve server-side.
func (a *Attachments) bind(mw *multipart.Writer) error {
	for _, name := range a.Names() {
		if err := bindFile(mw, name, a.paths[name]); err != nil {
			return fmt.Errorf("attachment %q: %w", name, err)
		}
	}
	return nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func bindFile(mw *multipart.Writer, name, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	contentType, err := detectMIME(path)
	if err != nil {
		contentType = "application/octet-stream"
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(name), quoteEscaper.Replace(filepath.Base(path))))
	h.Set("Content-Type", contentType)
	w, err := mw.CreatePart(h)
	if err != nil {
		return err
	}
	_, err = io.Copy(w, f)
	return err
}
