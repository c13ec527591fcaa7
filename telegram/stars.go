package telegram

import (
	"encoding/json"
	"fmt"
)

// TransactionPartner is the other side of a Telegram Star transaction.
type TransactionPartner interface {
	Value
	Type() string
}

var TransactionPartnerFamily = NewFamily("TransactionPartner", "type", map[string]Factory[TransactionPartner]{
	"user":         Variant[TransactionPartner, TransactionPartnerUser](),
	"fragment":     Variant[TransactionPartner, TransactionPartnerFragment](),
	"telegram_ads": Variant[TransactionPartner, TransactionPartnerTelegramAds](),
	"telegram_api": Variant[TransactionPartner, TransactionPartnerTelegramAPI](),
	"other":        Variant[TransactionPartner, TransactionPartnerOther](),
})

type TransactionPartnerUser struct {
	User             User        `json:"user"`
	InvoicePayload   string      `json:"invoice_payload,omitempty"`
	PaidMedia        []PaidMedia `json:"paid_media,omitempty"`
	PaidMediaPayload string      `json:"paid_media_payload,omitempty"`
}

func (p TransactionPartnerUser) Type() string { return "user" }

func (p TransactionPartnerUser) MarshalJSON() ([]byte, error) {
	type plain TransactionPartnerUser
	return marshalTagged("type", p.Type(), plain(p))
}

func (p *TransactionPartnerUser) UnmarshalJSON(data []byte) error {
	type plain TransactionPartnerUser
	var aux struct {
		*plain
		PaidMedia []json.RawMessage `json:"paid_media"`
	}
	aux.plain = (*plain)(p)
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	media, err := resolveAll(PaidMediaFamily.Resolve, aux.PaidMedia)
	if err != nil {
		return fmt.Errorf("paid_media%w", err)
	}
	p.PaidMedia = media
	return nil
}

// TransactionPartnerFragment is a withdrawal through Fragment.
type TransactionPartnerFragment struct {
	WithdrawalState RevenueWithdrawalState `json:"withdrawal_state,omitempty"`
}

func (p TransactionPartnerFragment) Type() string { return "fragment" }

func (p TransactionPartnerFragment) MarshalJSON() ([]byte, error) {
	type plain TransactionPartnerFragment
	return marshalTagged("type", p.Type(), plain(p))
}

func (p *TransactionPartnerFragment) UnmarshalJSON(data []byte) error {
	fields, err := decodeObject(data)
	if err != nil {
		return err
	}
	state, err := resolveOptional(RevenueWithdrawalStateFamily.Resolve, fields["withdrawal_state"])
	if err != nil {
		return fmt.Errorf("withdrawal_state: %w", err)
	}
	p.WithdrawalState = state
	return nil
}

type TransactionPartnerTelegramAds struct{}

func (p TransactionPartnerTelegramAds) Type() string { return "telegram_ads" }

func (p TransactionPartnerTelegramAds) MarshalJSON() ([]byte, error) {
	type plain TransactionPartnerTelegramAds
	return marshalTagged("type", p.Type(), plain(p))
}

type TransactionPartnerTelegramAPI struct {
	RequestCount int `json:"request_count"`
}

func (p TransactionPartnerTelegramAPI) Type() string { return "telegram_api" }

func (p TransactionPartnerTelegramAPI) MarshalJSON() ([]byte, error) {
	type plain TransactionPartnerTelegramAPI
	return marshalTagged("type", p.Type(), plain(p))
}

type TransactionPartnerOther struct{}

func (p TransactionPartnerOther) Type() string { return "other" }

func (p TransactionPartnerOther) MarshalJSON() ([]byte, error) {
	type plain TransactionPartnerOther
	return marshalTagged("type", p.Type(), plain(p))
}

// RevenueWithdrawalState is the state of a revenue withdrawal.
type RevenueWithdrawalState interface {
	Value
	Type() string
}

var RevenueWithdrawalStateFamily = NewFamily("RevenueWithdrawalState", "type", map[string]Factory[RevenueWithdrawalState]{
	"pending":   Variant[RevenueWithdrawalState, RevenueWithdrawalStatePending](),
	"succeeded": Variant[RevenueWithdrawalState, RevenueWithdrawalStateSucceeded](),
	"failed":    Variant[RevenueWithdrawalState, RevenueWithdrawalStateFailed](),
})

type RevenueWithdrawalStatePending struct{}

func (s RevenueWithdrawalStatePending) Type() string { return "pending" }

func (s RevenueWithdrawalStatePending) MarshalJSON() ([]byte, error) {
	type plain RevenueWithdrawalStatePending
	return marshalTagged("type", s.Type(), plain(s))
}

type RevenueWithdrawalStateSucceeded struct {
	Date int64  `json:"date"`
	URL  string `json:"url"`
}

func (s RevenueWithdrawalStateSucceeded) Type() string { return "succeeded" }

func (s RevenueWithdrawalStateSucceeded) MarshalJSON() ([]byte, error) {
	type plain RevenueWithdrawalStateSucceeded
	return marshalTagged("type", s.Type(), plain(s))
}

type RevenueWithdrawalStateFailed struct{}

func (s RevenueWithdrawalStateFailed) Type() string { return "failed" }

func (s RevenueWithdrawalStateFailed) MarshalJSON() ([]byte, error) {
	type plain RevenueWithdrawalStateFailed
	return marshalTagged("type", s.Type(), plain(s))
}

// StarTransaction is one Telegram Star movement. Exactly one of Source and
// Receiver is set: Source for incoming stars, Receiver for outgoing.
type StarTransaction struct {
	ID       string             `json:"id"`
	Amount   int                `json:"amount"`
	Date     int64              `json:"date"`
	Source   TransactionPartner `json:"source,omitempty"`
	Receiver TransactionPartner `json:"receiver,omitempty"`
}

func (t StarTransaction) MarshalJSON() ([]byte, error) {
	type plain StarTransaction
	return json.Marshal(plain(t))
}

func (t *StarTransaction) UnmarshalJSON(data []byte) error {
	type plain StarTransaction
	var aux struct {
		*plain
		Source   json.RawMessage `json:"source"`
		Receiver json.RawMessage `json:"receiver"`
	}
	aux.plain = (*plain)(t)
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	var err error
	if t.Source, err = resolveOptional(TransactionPartnerFamily.Resolve, aux.Source); err != nil {
		return fmt.Errorf("source: %w", err)
	}
	if t.Receiver, err = resolveOptional(TransactionPartnerFamily.Resolve, aux.Receiver); err != nil {
		return fmt.Errorf("receiver: %w", err)
	}
	return nil
}

type StarTransactions struct {
	Transactions []StarTransaction `json:"transactions"`
}

func (t StarTransactions) MarshalJSON() ([]byte, error) {
	type plain StarTransactions
	if t.Transactions == nil {
		t.Transactions = []StarTransaction{}
	}
	return json.Marshal(plain(t))
}
