package telegram

import (
	"encoding/json"
	"fmt"
)

// ChatMember is one member of a chat, keyed by its status.
type ChatMember interface {
	Value
	Status() string
	MemberUser() User
}

// ChatMemberFamily resolves ChatMember values by "status".
var ChatMemberFamily = NewFamily("ChatMember", "status", map[string]Factory[ChatMember]{
	"creator":       Variant[ChatMember, ChatMemberOwner](),
	"administrator": Variant[ChatMember, ChatMemberAdministrator](),
	"member":        Variant[ChatMember, ChatMemberMember](),
	"restricted":    Variant[ChatMember, ChatMemberRestricted](),
	"left":          Variant[ChatMember, ChatMemberLeft](),
	"kicked":        Variant[ChatMember, ChatMemberBanned](),
})

// ChatMemberOwner is the creator of the chat.
type ChatMemberOwner struct {
	User        User   `json:"user"`
	IsAnonymous bool   `json:"is_anonymous"`
	CustomTitle string `json:"custom_title,omitempty"`
}

func (m ChatMemberOwner) Status() string   { return "creator" }
func (m ChatMemberOwner) MemberUser() User { return m.User }

func (m ChatMemberOwner) MarshalJSON() ([]byte, error) {
	type plain ChatMemberOwner
	return marshalTagged("status", m.Status(), plain(m))
}

// ChatMemberAdministrator is a member with administrator rights.
type ChatMemberAdministrator struct {
	User                User `json:"user"`
	CanBeEdited         bool `json:"can_be_edited"`
	IsAnonymous         bool `json:"is_anonymous"`
	CanManageChat       bool `json:"can_manage_chat"`
	CanDeleteMessages   bool `json:"can_delete_messages"`
	CanManageVideoChats bool `json:"can_manage_video_chats"`
	CanRestrictMembers  bool `json:"can_restrict_members"`
	CanPromoteMembers   bool `json:"can_promote_members"`
	CanChangeInfo       bool `json:"can_change_info"`
	CanInviteUsers      bool `json:"can_invite_users"`
	CanPostStories      bool `json:"can_post_stories"`
	CanEditStories      bool `json:"can_edit_stories"`
	CanDeleteStories    bool `json:"can_delete_stories"`
	// Present only for the chat kinds they apply to; nil means absent.
	CanPostMessages *bool  `json:"can_post_messages,omitempty"`
	CanEditMessages *bool  `json:"can_edit_messages,omitempty"`
	CanPinMessages  *bool  `json:"can_pin_messages,omitempty"`
	CanManageTopics *bool  `json:"can_manage_topics,omitempty"`
	CustomTitle     string `json:"custom_title,omitempty"`
}

func (m ChatMemberAdministrator) Status() string   { return "administrator" }
func (m ChatMemberAdministrator) MemberUser() User { return m.User }

func (m ChatMemberAdministrator) MarshalJSON() ([]byte, error) {
	type plain ChatMemberAdministrator
	return marshalTagged("status", m.Status(), plain(m))
}

// ChatMemberMember is a regular member. UntilDate is set while a
// subscription is active.
type ChatMemberMember struct {
	User      User  `json:"user"`
	UntilDate int64 `json:"until_date,omitempty"`
}

func (m ChatMemberMember) Status() string   { return "member" }
func (m ChatMemberMember) MemberUser() User { return m.User }

func (m ChatMemberMember) MarshalJSON() ([]byte, error) {
	type plain ChatMemberMember
	return marshalTagged("status", m.Status(), plain(m))
}

// ChatMemberRestricted is a member under restrictions, supergroups only.
type ChatMemberRestricted struct {
	User                  User  `json:"user"`
	IsMember              bool  `json:"is_member"`
	CanSendMessages       bool  `json:"can_send_messages"`
	CanSendAudios         bool  `json:"can_send_audios"`
	CanSendDocuments      bool  `json:"can_send_documents"`
	CanSendPhotos         bool  `json:"can_send_photos"`
	CanSendVideos         bool  `json:"can_send_videos"`
	CanSendVideoNotes     bool  `json:"can_send_video_notes"`
	CanSendVoiceNotes     bool  `json:"can_send_voice_notes"`
	CanSendPolls          bool  `json:"can_send_polls"`
	CanSendOtherMessages  bool  `json:"can_send_other_messages"`
	CanAddWebPagePreviews bool  `json:"can_add_web_page_previews"`
	CanChangeInfo         bool  `json:"can_change_info"`
	CanInviteUsers        bool  `json:"can_invite_users"`
	CanPinMessages        bool  `json:"can_pin_messages"`
	CanManageTopics       bool  `json:"can_manage_topics"`
	UntilDate             int64 `json:"until_date"`
}

func (m ChatMemberRestricted) Status() string   { return "restricted" }
func (m ChatMemberRestricted) MemberUser() User { return m.User }

func (m ChatMemberRestricted) MarshalJSON() ([]byte, error) {
	type plain ChatMemberRestricted
	return marshalTagged("status", m.Status(), plain(m))
}

// ChatMemberLeft is a user who is not, or no longer, a member.
type ChatMemberLeft struct {
	User User `json:"user"`
}

func (m ChatMemberLeft) Status() string   { return "left" }
func (m ChatMemberLeft) MemberUser() User { return m.User }

func (m ChatMemberLeft) MarshalJSON() ([]byte, error) {
	type plain ChatMemberLeft
	return marshalTagged("status", m.Status(), plain(m))
}

// ChatMemberBanned is wired as status "kicked".
type ChatMemberBanned struct {
	User      User  `json:"user"`
	UntilDate int64 `json:"until_date"`
}

func (m ChatMemberBanned) Status() string   { return "kicked" }
func (m ChatMemberBanned) MemberUser() User { return m.User }

func (m ChatMemberBanned) MarshalJSON() ([]byte, error) {
	type plain ChatMemberBanned
	return marshalTagged("status", m.Status(), plain(m))
}

// ChatAdministratorRights are the rights of an administrator in a chat.
type ChatAdministratorRights struct {
	IsAnonymous         bool `json:"is_anonymous"`
	CanManageChat       bool `json:"can_manage_chat"`
	CanDeleteMessages   bool `json:"can_delete_messages"`
	CanManageVideoChats bool `json:"can_manage_video_chats"`
	CanRestrictMembers  bool `json:"can_restrict_members"`
	CanPromoteMembers   bool `json:"can_promote_members"`
	CanChangeInfo       bool `json:"can_change_info"`
	CanInviteUsers      bool `json:"can_invite_users"`
	CanPostStories      bool `json:"can_post_stories"`
	CanEditStories      bool `json:"can_edit_stories"`
	CanDeleteStories    bool `json:"can_delete_stories"`
	// Channel-only and supergroup-only rights; nil means absent.
	CanPostMessages *bool `json:"can_post_messages,omitempty"`
	CanEditMessages *bool `json:"can_edit_messages,omitempty"`
	CanPinMessages  *bool `json:"can_pin_messages,omitempty"`
	CanManageTopics *bool `json:"can_manage_topics,omitempty"`
}

func (r ChatAdministratorRights) MarshalJSON() ([]byte, error) {
	type plain ChatAdministratorRights
	return json.Marshal(plain(r))
}

// ChatInviteLink is an invite link for a chat.
type ChatInviteLink struct {
	InviteLink              string `json:"invite_link"`
	Creator                 User   `json:"creator"`
	CreatesJoinRequest      bool   `json:"creates_join_request"`
	IsPrimary               bool   `json:"is_primary"`
	IsRevoked               bool   `json:"is_revoked"`
	Name                    string `json:"name,omitempty"`
	ExpireDate              int64  `json:"expire_date,omitempty"`
	MemberLimit             int    `json:"member_limit,omitempty"`
	PendingJoinRequestCount int    `json:"pending_join_request_count,omitempty"`
}

func (l ChatInviteLink) MarshalJSON() ([]byte, error) {
	type plain ChatInviteLink
	return json.Marshal(plain(l))
}

// ChatMemberUpdated reports a change in a member's status.
type ChatMemberUpdated struct {
	Chat                    Chat            `json:"chat"`
	From                    User            `json:"from"`
	Date                    int64           `json:"date"`
	OldChatMember           ChatMember      `json:"old_chat_member"`
	NewChatMember           ChatMember      `json:"new_chat_member"`
	InviteLink              *ChatInviteLink `json:"invite_link,omitempty"`
	ViaJoinRequest          bool            `json:"via_join_request,omitempty"`
	ViaChatFolderInviteLink bool            `json:"via_chat_folder_invite_link,omitempty"`
}

func (u ChatMemberUpdated) MarshalJSON() ([]byte, error) {
	type plain ChatMemberUpdated
	return json.Marshal(plain(u))
}

func (u *ChatMemberUpdated) UnmarshalJSON(data []byte) error {
	type plain ChatMemberUpdated
	var aux struct {
		*plain
		OldChatMember json.RawMessage `json:"old_chat_member"`
		NewChatMember json.RawMessage `json:"new_chat_member"`
	}
	aux.plain = (*plain)(u)
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	var err error
	if u.OldChatMember, err = resolveOptional(ChatMemberFamily.Resolve, aux.OldChatMember); err != nil {
		return fmt.Errorf("old_chat_member: %w", err)
	}
	if u.NewChatMember, err = resolveOptional(ChatMemberFamily.Resolve, aux.NewChatMember); err != nil {
		return fmt.Errorf("new_chat_member: %w", err)
	}
	return nil
}
