package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

var errNoAuthenticatedUser = errors.New("no authenticated user")

func currentUserID(c *fiber.Ctx) (uint, error) {
	userID, ok := c.Locals("user_id").(uint)
	if !ok || userID == 0 {
		return 0, errNoAuthenticatedUser
	}
	return userID, nil
}

func parseUintParam(c *fiber.Ctx, key string) (uint, error) {
	value := c.Params(key)
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, errors.New("invalid " + key)
	}
	return uint(parsed), nil
}
