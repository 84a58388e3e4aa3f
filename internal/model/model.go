package model

import "strings"

type Role string

const (
	RoleMentor Role = "mentor"
	RoleMentee Role = "mentee"
)

func (r Role) Valid() bool {
	return r == RoleMentor || r == RoleMentee
}

// ParseRole accepts "mentor" or "mentee" (case-insensitive). Anything else is empty.
func ParseRole(s string) Role {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if r.Valid() {
		return r
	}
	return ""
}

// Mentor is a directory entry. Entries are replaced wholesale on refresh and never patched.
type Mentor struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	TechStack    string `json:"tech_stack,omitempty"`
	Intro        string `json:"intro,omitempty"`
	ProfileImage string `json:"profile_image,omitempty"`
}

type MatchStatus string

const (
	MatchPending  MatchStatus = "pending"
	MatchAccepted MatchStatus = "accepted"
	MatchRejected MatchStatus = "rejected"
)

// Label is the short Korean label shown next to a request.
func (s MatchStatus) Label() string {
	switch s {
	case MatchAccepted:
		return "수락"
	case MatchRejected:
		return "거절"
	case MatchPending:
		return "대기"
	default:
		return string(s)
	}
}

type MatchRequest struct {
	MenteeEmail string      `json:"mentee_email"`
	MentorEmail string      `json:"mentor_email"`
	Status      MatchStatus `json:"status"`
	Message     string      `json:"message,omitempty"`
}

type Profile struct {
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      Role   `json:"role"`
	Intro     string `json:"intro,omitempty"`
	TechStack string `json:"tech_stack,omitempty"`
}

// ProfileUpdate is the editable subset of a profile.
type ProfileUpdate struct {
	Name      string `json:"name"`
	Intro     string `json:"intro"`
	Role      Role   `json:"role"`
	TechStack string `json:"tech_stack"`
}

// Apply merges the update fields into p.
func (u ProfileUpdate) Apply(p Profile) Profile {
	p.Name = u.Name
	p.Intro = u.Intro
	p.Role = u.Role
	p.TechStack = u.TechStack
	return p
}

func UpdateFromProfile(p Profile) ProfileUpdate {
	return ProfileUpdate{Name: p.Name, Intro: p.Intro, Role: p.Role, TechStack: p.TechStack}
}

type SignupInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     Role   `json:"role"`
}

type LoginInput struct {
	Email    string
	Password string
}

type MatchInput struct {
	MentorEmail string `json:"mentor_email"`
	Message     string `json:"message"`
}

type RespondInput struct {
	MenteeEmail string
	Accept      bool
}

type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
