package api

import "google.golang.org/protobuf/types/known/timestamppb"

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignUpResponse struct {
	UserId string `json:"user_id"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session is returned by SignIn and RefreshToken.
type Session struct {
	UserId       string `json:"user_id"`
	Email        string `json:"email"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type SignOutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type SignOutResponse struct{}

// Entry is one clipboard record. CreatedAt is nil until the store assigns it.
type Entry struct {
	Id        string                 `json:"id"`
	UserId    string                 `json:"user_id"`
	Title     string                 `json:"title"`
	Content   string                 `json:"content"`
	CreatedAt *timestamppb.Timestamp `json:"created_at,omitempty"`
}

type CreateEntryRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type CreateEntryResponse struct {
	Entry *Entry `json:"entry"`
}

type UpdateEntryRequest struct {
	Id      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type UpdateEntryResponse struct{}

type DeleteEntryRequest struct {
	Id string `json:"id"`
}

type DeleteEntryResponse struct{}

type WatchEntriesRequest struct{}

// EntrySnapshot is the complete owner-scoped result set at one moment.
type EntrySnapshot struct {
	Entries []*Entry `json:"entries"`
}

type ExportEntriesRequest struct{}

type ExportEntriesResponse struct {
	Key string `json:"key"`
	Url string `json:"url"`
}
