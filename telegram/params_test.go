package telegram

import (
	"encoding/json"
	"errors"
	"testing"
)

func mustFlatten(t *testing.T, p Params) string {
	t.Helper()
	fields, err := Flatten(p)
	if err != nil {
		t.Fatalf("Flatten: %v", err)
	}
	b, err := json.Marshal(fields)
	if err != nil {
		t.Fatalf("marshal fields: %v", err)
	}
	return string(b)
}

func TestFlatten(t *testing.T) {
	var nilMarkup *InlineKeyboardMarkup
	var nilScope BotCommandScope

	tests := []struct {
		name  string
		build func(p *Params)
		want  string
	}{
		{"nil dropped", func(p *Params) { p.Set("a", nil).Set("b", 1) }, `{"b":1}`},
		{"zero scalars kept", func(p *Params) { p.Set("s", "").Set("f", false).Set("n", 0) }, `{"s":"","f":false,"n":0}`},
		{"empty slice dropped", func(p *Params) { p.Set("e", []int{}) }, `{}`},
		{"nil slice dropped", func(p *Params) { p.Set("e", []string(nil)) }, `{}`},
		{"non-empty slice kept", func(p *Params) { p.Set("e", []int{1}) }, `{"e":[1]}`},
		{"null elements dropped", func(p *Params) { p.Set("e", []any{nil, 2, nil}) }, `{"e":[2]}`},
		{"all-null slice dropped", func(p *Params) { p.Set("e", []any{nil}) }, `{}`},
		{"map nulls dropped", func(p *Params) { p.Set("m", map[string]any{"a": nil, "b": 1}) }, `{"m":{"b":1}}`},
		{"empty map dropped", func(p *Params) { p.Set("m", map[string]any{"a": nil}) }, `{}`},
		{"nested params", func(p *Params) {
			var reply Params
			reply.Set("message_id", 5).Set("quote", nil)
			p.Set("reply_parameters", reply)
		}, `{"reply_parameters":{"message_id":5}}`},
		{"empty nested params dropped", func(p *Params) { p.Set("x", Params{}) }, `{}`},
		{"value replaced by tree", func(p *Params) { p.Set("r", ReactionTypeEmoji{Emoji: "👍"}) }, `{"r":{"emoji":"👍","type":"emoji"}}`},
		{"nil value pointer dropped", func(p *Params) { p.Set("reply_markup", nilMarkup) }, `{}`},
		{"nil interface dropped", func(p *Params) { p.Set("scope", nilScope) }, `{}`},
		{"empty value tree dropped", func(p *Params) { p.Set("reply_markup", InlineKeyboardMarkup{}) }, `{}`},
		{"pointer dereferenced", func(p *Params) {
			n := 300
			p.Set("cache_time", &n)
		}, `{"cache_time":300}`},
		{"named scalar", func(p *Params) {
			type mode string
			p.Set("parse_mode", mode("HTML"))
		}, `{"parse_mode":"HTML"}`},
		{"chat id username", func(p *Params) { p.Set("chat_id", ChatUsername("@chan")) }, `{"chat_id":"@chan"}`},
		{"big chat id", func(p *Params) { p.Set("chat_id", ChatIDInt(-1001234567890123)) }, `{"chat_id":-1001234567890123}`},
		{"slice of values", func(p *Params) {
			p.Set("reaction", []ReactionType{ReactionTypeEmoji{Emoji: "🔥"}, ReactionTypePaid{}})
		}, `{"reaction":[{"emoji":"🔥","type":"emoji"},{"type":"paid"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Params
			tt.build(&p)
			if got := mustFlatten(t, p); got != tt.want {
				t.Errorf("Flatten = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestFlatten_unsupportedType(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		wantKey  string
		wantType string
	}{
		{"channel", make(chan int), "k", "chan int"},
		{"func in slice", []any{1, func() {}}, "k[1]", "func()"},
		{"struct in map", map[string]any{"inner": struct{}{}}, "k.inner", "struct {}"},
		{"int-keyed map", map[int]string{1: "a"}, "k", "map[int]string"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Params
			p.Set("k", tt.value)
			_, err := Flatten(p)
			var pe *ParamError
			if !errors.As(err, &pe) {
				t.Fatalf("error = %v, want *ParamError", err)
			}
			if pe.Key != tt.wantKey || pe.Type != tt.wantType {
				t.Errorf("ParamError = {%q %q}, want {%q %q}", pe.Key, pe.Type, tt.wantKey, tt.wantType)
			}
		})
	}
}

func TestParams_SetReplacesInPlace(t *testing.T) {
	var p Params
	p.Set("a", 1).Set("b", 2).Set("a", 3)

	if got := mustFlatten(t, p); got != `{"a":3,"b":2}` {
		t.Errorf("Flatten = %s, want {\"a\":3,\"b\":2}", got)
	}
	if p.Len() != 2 {
		t.Errorf("Len = %d, want 2", p.Len())
	}
}

func TestRequest_Body(t *testing.T) {
	req := NewRequest("sendMessage").Set("chat_id", 42).Set("text", "hi").Set("parse_mode", nil)

	fields, err := req.Body()
	if err != nil {
		t.Fatalf("Body: %v", err)
	}
	b, _ := json.Marshal(fields)
	if want := `{"chat_id":42,"text":"hi","method":"sendMessage"}`; string(b) != want {
		t.Errorf("body = %s, want %s", b, want)
	}
}

func TestRequest_Body_reservedMethodKey(t *testing.T) {
	req := NewRequest("getMe").Set("method", "x")
	if _, err := req.Body(); err == nil {
		t.Fatal("expected error for reserved method param")
	}
}

func TestTree_keepsLargeIntegers(t *testing.T) {
	tree, err := Tree(User{ID: 9007199254740993, FirstName: "a"})
	if err != nil {
		t.Fatalf("Tree: %v", err)
	}
	m, ok := tree.(map[string]any)
	if !ok {
		t.Fatalf("tree = %T, want map", tree)
	}
	if got := m["id"]; got != json.Number("9007199254740993") {
		t.Errorf("id = %v (%T), want json.Number 9007199254740993", got, got)
	}
	if _, ok := m["last_name"]; ok {
		t.Error("absent optional last_name was emitted")
	}
}

func TestOpt(t *testing.T) {
	fields := map[string]json.RawMessage{
		"n":    json.RawMessage(`7`),
		"null": json.RawMessage(`null`),
		"bad":  json.RawMessage(`"x"`),
	}
	if v, err := Opt(fields, "n", 1); err != nil || v != 7 {
		t.Errorf("Opt(n) = %d, %v, want 7, nil", v, err)
	}
	if v, err := Opt(fields, "missing", 1); err != nil || v != 1 {
		t.Errorf("Opt(missing) = %d, %v, want 1, nil", v, err)
	}
	if v, err := Opt(fields, "null", 1); err != nil || v != 1 {
		t.Errorf("Opt(null) = %d, %v, want 1, nil", v, err)
	}
	if _, err := Opt(fields, "bad", 1); err == nil {
		t.Error("Opt(bad) expected type error")
	}
}

func TestMarshalTagged(t *testing.T) {
	b, err := marshalTagged("type", "paid", struct{}{})
	if err != nil || string(b) != `{"type":"paid"}` {
		t.Errorf("empty body = %s, %v", b, err)
	}
	b, err = marshalTagged("status", "left", struct {
		A int `json:"a"`
	}{1})
	if err != nil || string(b) != `{"status":"left","a":1}` {
		t.Errorf("body = %s, %v", b, err)
	}
	if _, err := marshalTagged("type", "x", []int{1}); err == nil {
		t.Error("expected error for non-object body")
	}
}
