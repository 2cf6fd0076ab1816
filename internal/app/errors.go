package app

import (
	"github.com/rpggio/noteboard/internal/backend"
)

// failureText maps an action error to the one-line notice shown for it. A
// server-provided message wins over apiFallback; transport failures get
// networkFallback.
func failureText(err error, apiFallback, networkFallback string) string {
	switch {
	case err == nil:
		return ""
	case backend.IsNetwork(err):
		return networkFallback
	}
	if msg, ok := backend.ServerMessage(err); ok {
		return msg
	}
	return apiFallback
}
