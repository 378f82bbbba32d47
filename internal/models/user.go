package models

// Client tel que stocké sur la ressource clients de la passerelle
type Client struct {
	ID       int    `json:"id_key,omitempty"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"` // hash Argon2id, jamais renvoyé au front
}
