package api

import (
	"errors"
	"regexp"

	"github.com/clearlend/loanclear/lcerrors"
	"github.com/clearlend/loanclear/utils/env"
	jwt "github.com/dgrijalva/jwt-go"
	"github.com/gofrs/uuid"
	"github.com/kataras/iris"
)

type Authenticator interface {
	AuthenticateAdmin(Context) error
}

type authenticator struct {
	Authenticator
}

func NewAuthenticator() Authenticator {
	return &authenticator{}
}

var matcher = regexp.MustCompile("Bearer (.*)")

// AuthenticateAdmin guards the administrative registry operations
// (seed / reset) behind a signed operator token.
func (a *authenticator) AuthenticateAdmin(ctx Context) error {
	adminID, err := evaluateToken(ctx, env.GetVar("ADMIN_SECRET"))
	if err != nil {
		return lcerrors.Unauthorized.WithMsg(err.Error())
	}

	ctx.Authorize(adminID, PermissionAdmin)

	ctx.Values().Set("admin_id", adminID.String())

	return nil
}

func evaluateToken(ctx iris.Context, secret string) (uuid.UUID, error) {
	token, err := extractToken(ctx, secret)
	if err != nil {
		return uuid.Nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, errors.New("token claims malformed")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, errors.New("token subject missing")
	}

	adminID, err := uuid.FromString(sub)
	if err != nil {
		return uuid.Nil, err
	}

	if !token.Valid || claims["iss"] != "loanclear" {
		return uuid.Nil, errors.New("token invalid")
	}

	return adminID, nil
}

func extractToken(ctx iris.Context, secret string) (*jwt.Token, error) {
	header := ctx.Request().Header.Get("Authorization")

	match := matcher.FindStringSubmatch(header)
	if len(match) < 2 {
		return nil, errors.New("invalid authorization header value format")
	}

	token, err := jwt.Parse(match[1], func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})

	if err != nil {
		return nil, err
	}

	return token, nil
}
