package telegram

import (
	"encoding/json"
	"fmt"
)

// BackgroundFill is how a chat background is filled. Colors are RGB24.
type BackgroundFill interface {
	Value
	Type() string
}

var BackgroundFillFamily = NewFamily("BackgroundFill", "type", map[string]Factory[BackgroundFill]{
	"solid":             Variant[BackgroundFill, BackgroundFillSolid](),
	"gradient":          Variant[BackgroundFill, BackgroundFillGradient](),
	"freeform_gradient": Variant[BackgroundFill, BackgroundFillFreeformGradient](),
})

type BackgroundFillSolid struct {
	Color int `json:"color"`
}

func (f BackgroundFillSolid) Type() string { return "solid" }

func (f BackgroundFillSolid) MarshalJSON() ([]byte, error) {
	type plain BackgroundFillSolid
	return marshalTagged("type", f.Type(), plain(f))
}

type BackgroundFillGradient struct {
	TopColor      int `json:"top_color"`
	BottomColor   int `json:"bottom_color"`
	RotationAngle int `json:"rotation_angle"`
}

func (f BackgroundFillGradient) Type() string { return "gradient" }

func (f BackgroundFillGradient) MarshalJSON() ([]byte, error) {
	type plain BackgroundFillGradient
	return marshalTagged("type", f.Type(), plain(f))
}

type BackgroundFillFreeformGradient struct {
	Colors []int `json:"colors"`
}

func (f BackgroundFillFreeformGradient) Type() string { return "freeform_gradient" }

func (f BackgroundFillFreeformGradient) MarshalJSON() ([]byte, error) {
	type plain BackgroundFillFreeformGradient
	return marshalTagged("type", f.Type(), plain(f))
}

// BackgroundType is the kind of a chat background.
type BackgroundType interface {
	Value
	Type() string
}

var BackgroundTypeFamily = NewFamily("BackgroundType", "type", map[string]Factory[BackgroundType]{
	"fill":       Variant[BackgroundType, BackgroundTypeFill](),
	"wallpaper":  Variant[BackgroundType, BackgroundTypeWallpaper](),
	"pattern":    Variant[BackgroundType, BackgroundTypePattern](),
	"chat_theme": Variant[BackgroundType, BackgroundTypeChatTheme](),
})

type BackgroundTypeFill struct {
	Fill             BackgroundFill `json:"fill"`
	DarkThemeDimming int            `json:"dark_theme_dimming"`
}

func (b BackgroundTypeFill) Type() string { return "fill" }

func (b BackgroundTypeFill) MarshalJSON() ([]byte, error) {
	type plain BackgroundTypeFill
	return marshalTagged("type", b.Type(), plain(b))
}

func (b *BackgroundTypeFill) UnmarshalJSON(data []byte) error {
	type plain BackgroundTypeFill
	var aux struct {
		*plain
		Fill json.RawMessage `json:"fill"`
	}
	aux.plain = (*plain)(b)
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	fill, err := BackgroundFillFamily.Resolve(aux.Fill)
	if err != nil {
		return fmt.Errorf("fill: %w", err)
	}
	b.Fill = fill
	return nil
}

type BackgroundTypeWallpaper struct {
	Document         Document `json:"document"`
	DarkThemeDimming int      `json:"dark_theme_dimming"`
	IsBlurred        bool     `json:"is_blurred,omitempty"`
	IsMoving         bool     `json:"is_moving,omitempty"`
}

func (b BackgroundTypeWallpaper) Type() string { return "wallpaper" }

func (b BackgroundTypeWallpaper) MarshalJSON() ([]byte, error) {
	type plain BackgroundTypeWallpaper
	return marshalTagged("type", b.Type(), plain(b))
}

type BackgroundTypePattern struct {
	Document   Document       `json:"document"`
	Fill       BackgroundFill `json:"fill"`
	Intensity  int            `json:"intensity"`
	IsInverted bool           `json:"is_inverted,omitempty"`
	IsMoving   bool           `json:"is_moving,omitempty"`
}

func (b BackgroundTypePattern) Type() string { return "pattern" }

func (b BackgroundTypePattern) MarshalJSON() ([]byte, error) {
	type plain BackgroundTypePattern
	return marshalTagged("type", b.Type(), plain(b))
}

func (b *BackgroundTypePattern) UnmarshalJSON(data []byte) error {
	type plain BackgroundTypePattern
	var aux struct {
		*plain
		Fill json.RawMessage `json:"fill"`
	}
	aux.plain = (*plain)(b)
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	fill, err := BackgroundFillFamily.Resolve(aux.Fill)
	if err != nil {
		return fmt.Errorf("fill: %w", err)
	}
	b.Fill = fill
	return nil
}

type BackgroundTypeChatTheme struct {
	ThemeName string `json:"theme_name"`
}

func (b BackgroundTypeChatTheme) Type() string { return "chat_theme" }

func (b BackgroundTypeChatTheme) MarshalJSON() ([]byte, error) {
	type plain BackgroundTypeChatTheme
	return marshalTagged("type", b.Type(), plain(b))
}

// ChatBackground is a background set in a chat.
type ChatBackground struct {
	Type BackgroundType `json:"type"`
}

func (c ChatBackground) MarshalJSON() ([]byte, error) {
	type plain ChatBackground
	return json.Marshal(plain(c))
}

func (c *ChatBackground) UnmarshalJSON(data []byte) error {
	fields, err := decodeObject(data)
	if err != nil {
		return err
	}
	t, err := BackgroundTypeFamily.Resolve(fields["type"])
	if err != nil {
		return fmt.Errorf("type: %w", err)
	}
	c.Type = t
	return nil
}
