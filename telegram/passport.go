package telegram

// PassportElementError reports an issue in Telegram Passport data the user
// must fix. Variants are keyed by "source"; Type names the element kind
// (passport, driver_license, utility_bill, ...).
type PassportElementError interface {
	Value
	Source() string
}

var PassportElementErrorFamily = NewFamily("PassportElementError", "source", map[string]Factory[PassportElementError]{
	"data":              Variant[PassportElementError, PassportElementErrorDataField](),
	"front_side":        Variant[PassportElementError, PassportElementErrorFrontSide](),
	"reverse_side":      Variant[PassportElementError, PassportElementErrorReverseSide](),
	"selfie":            Variant[PassportElementError, PassportElementErrorSelfie](),
	"file":              Variant[PassportElementError, PassportElementErrorFile](),
	"files":             Variant[PassportElementError, PassportElementErrorFiles](),
	"translation_file":  Variant[PassportElementError, PassportElementErrorTranslationFile](),
	"translation_files": Variant[PassportElementError, PassportElementErrorTranslationFiles](),
	"unspecified":       Variant[PassportElementError, PassportElementErrorUnspecified](),
})

type PassportElementErrorDataField struct {
	Type      string `json:"type"`
	FieldName string `json:"field_name"`
	DataHash  string `json:"data_hash"`
	Message   string `json:"message"`
}

func (e PassportElementErrorDataField) Source() string { return "data" }

func (e PassportElementErrorDataField) MarshalJSON() ([]byte, error) {
	type plain PassportElementErrorDataField
	return marshalTagged("source", e.Source(), plain(e))
}

type PassportElementErrorFrontSide struct {
	Type     string `json:"type"`
	FileHash string `json:"file_hash"`
	Message  string `json:"message"`
}

func (e PassportElementErrorFrontSide) Source() string { return "front_side" }

func (e PassportElementErrorFrontSide) MarshalJSON() ([]byte, error) {
	type plain PassportElementErrorFrontSide
	return marshalTagged("source", e.Source(), plain(e))
}

type PassportElementErrorReverseSide struct {
	Type     string `json:"type"`
	FileHash string `json:"file_hash"`
	Message  string `json:"message"`
}

func (e PassportElementErrorReverseSide) Source() string { return "reverse_side" }

func (e PassportElementErrorReverseSide) MarshalJSON() ([]byte, error) {
	type plain PassportElementErrorReverseSide
	return marshalTagged("source", e.Source(), plain(e))
}

type PassportElementErrorSelfie struct {
	Type     string `json:"type"`
	FileHash string `json:"file_hash"`
	Message  string `json:"message"`
}

func (e PassportElementErrorSelfie) Source() string { return "selfie" }

func (e PassportElementErrorSelfie) MarshalJSON() ([]byte, error) {
	type plain PassportElementErrorSelfie
	return marshalTagged("source", e.Source(), plain(e))
}

type PassportElementErrorFile struct {
	Type     string `json:"type"`
	FileHash string `json:"file_hash"`
	Message  string `json:"message"`
}

func (e PassportElementErrorFile) Source() string { return "file" }

func (e PassportElementErrorFile) MarshalJSON() ([]byte, error) {
	type plain PassportElementErrorFile
	return marshalTagged("source", e.Source(), plain(e))
}

type PassportElementErrorFiles struct {
	Type       string   `json:"type"`
	FileHashes []string `json:"file_hashes"`
	Message    string   `json:"message"`
}

func (e PassportElementErrorFiles) Source() string { return "files" }

func (e PassportElementErrorFiles) MarshalJSON() ([]byte, error) {
	type plain PassportElementErrorFiles
	return marshalTagged("source", e.Source(), plain(e))
}

type PassportElementErrorTranslationFile struct {
	Type     string `json:"type"`
	FileHash string `json:"file_hash"`
	Message  string `json:"message"`
}

func (e PassportElementErrorTranslationFile) Source() string { return "translation_file" }

func (e PassportElementErrorTranslationFile) MarshalJSON() ([]byte, error) {
	type plain PassportElementErrorTranslationFile
	return marshalTagged("source", e.Source(), plain(e))
}

type PassportElementErrorTranslationFiles struct {
	Type       string   `json:"type"`
	FileHashes []string `json:"file_hashes"`
	Message    string   `json:"message"`
}

func (e PassportElementErrorTranslationFiles) Source() string { return "translation_files" }

func (e PassportElementErrorTranslationFiles) MarshalJSON() ([]byte, error) {
	type plain PassportElementErrorTranslationFiles
	return marshalTagged("source", e.Source(), plain(e))
}

type PassportElementErrorUnspecified struct {
	Type        string `json:"type"`
	ElementHash string `json:"element_hash"`
	Message     string `json:"message"`
}

func (e PassportElementErrorUnspecified) Source() string { return "unspecified" }

func (e PassportElementErrorUnspecified) MarshalJSON() ([]byte, error) {
	type plain PassportElementErrorUnspecified
	return marshalTagged("source", e.Source(), plain(e))
}
