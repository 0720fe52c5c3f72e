package transport

// Pointer fields distinguish "omitted" from "set to zero value" on the
// patch payloads; a JSON null counts as omitted.

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type ProfileUpdateRequest struct {
	Name   *string `json:"name"`
	Avatar *string `json:"avatar"`
}

type TaskCreateRequest struct {
	Text     string   `json:"text"`
	Priority string   `json:"priority"`
	DueDate  string   `json:"due_date"`
	Tags     []string `json:"tags"`
}

type TaskUpdateRequest struct {
	Text      *string   `json:"text"`
	Completed *bool     `json:"completed"`
	Priority  *string   `json:"priority"`
	DueDate   *string   `json:"due_date"`
	Tags      *[]string `json:"tags"`
}

type PostCreateRequest struct {
	Title     string   `json:"title"`
	Body      string   `json:"body"`
	Category  string   `json:"category"`
	Tags      []string `json:"tags"`
	Image     string   `json:"image"`
	Published *bool    `json:"published"`
}

type PostUpdateRequest struct {
	Title     *string   `json:"title"`
	Body      *string   `json:"body"`
	Category  *string   `json:"category"`
	Tags      *[]string `json:"tags"`
	Image     *string   `json:"image"`
	Published *bool     `json:"published"`
}
