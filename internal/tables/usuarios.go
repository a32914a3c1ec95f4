package tables

import (
	"context"
	"fmt"

	"github.com/JonMunkholm/bizdash/internal/business"
	"github.com/JonMunkholm/bizdash/internal/datatable"
)

// UsersKey is the registry key of the user listing.
const UsersKey = "usuarios"

func init() {
	Register(Definition{
		Key:         UsersKey,
		Title:       "Usuarios",
		Description: "Usuarios con acceso al panel",
		Order:       2,
		Mount:       mountUsers,
	})
}

func mountUsers(env Env) (Handle, error) {
	def, _ := Get(UsersKey)

	opts := datatable.DefaultOptions[*business.User]()
	opts.RowKey = func(u *business.User) string { return u.ID }
	opts.EmptyMessage = "No hay usuarios registrados"
	opts.OnRowClick = func(u *business.User) {
		env.notify(Notice{Level: LevelInfo, Message: fmt.Sprintf("Usuario %s (%s)", u.Name, u.Role)})
	}

	m, err := Mount(def, env, business.UserColumns(), opts,
		func(ctx context.Context) ([]*business.User, error) {
			return env.Store.Users(ctx)
		})
	if err != nil {
		return nil, err
	}
	return m, nil
}
