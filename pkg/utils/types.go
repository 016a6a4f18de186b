package utils

const SuccessMessage = "Webhook successfully forwarded to Teams"

type Response struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}
