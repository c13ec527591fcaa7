package telegram

import (
	"encoding/json"
	"strings"
)

const attachScheme = "attach://"

// InputFile refers to a file to send: a file_id already on the Bot API
// servers, an HTTP URL the server fetches, or a local upload registered in
// an Attachments. Exactly one of the three is set; the constructors are the
// only way to build a non-zero InputFile.
type InputFile struct {
	id     string
	url    string
	attach string
}

// FileID refers to a file already stored by the Bot API.
func FileID(id string) InputFile { return InputFile{id: id} }

// FileURL refers to a file the Bot API downloads from url.
func FileURL(url string) InputFile { return InputFile{url: url} }

// IsZero reports whether f refers to nothing.
func (f InputFile) IsZero() bool { return f.id == "" && f.url == "" && f.attach == "" }

// IsUpload reports whether f is bound to a local attachment.
func (f InputFile) IsUpload() bool { return f.attach != "" }

// AttachName is the multipart part name of an upload, or "".
func (f InputFile) AttachName() string { return f.attach }

// String is the wire form: the file_id, the URL, or attach://<name>.
func (f InputFile) String() string {
	switch {
	case f.attach != "":
		return attachScheme + f.attach
	case f.url != "":
		return f.url
	default:
		return f.id
	}
}

func (f InputFile) MarshalJSON() ([]byte, error) {
	if f.IsZero() {
		return nil, ErrEmptyInputFile
	}
	return json.Marshal(f.String())
}

// UnmarshalJSON classifies a wire string by its prefix.
func (f *InputFile) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	switch {
	case s == "":
		*f = InputFile{}
	case strings.HasPrefix(s, attachScheme):
		*f = InputFile{attach: strings.TrimPrefix(s, attachScheme)}
	case strings.HasPrefix(s, "http://"), strings.HasPrefix(s, "https://"):
		*f = FileURL(s)
	default:
		*f = FileID(s)
	}
	return nil
}
