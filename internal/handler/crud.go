package handler

import (
	"context"

	"go-inventory-ledger/internal/payload"

	"github.com/gofiber/fiber/v2"
)

// The helpers below implement the shared list/get/create/update/delete
// contract. Each entity handler binds them to its service methods.

func listAll[T any](c *fiber.Ctx, list func(context.Context) ([]T, error)) error {
	items, err := list(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(items)
}

func getOne[T any](c *fiber.Ctx, get func(context.Context, uint) (*T, error)) error {
	id, ok, err := paramID(c)
	if !ok {
		return err
	}
	item, err := get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(item)
}

func createOne[T any](c *fiber.Ctx, create func(context.Context, payload.Fields) (*T, error)) error {
	f, ok, err := parseBody(c)
	if !ok {
		return err
	}
	item, err := create(c.UserContext(), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

func updateOne[T any](c *fiber.Ctx, update func(context.Context, uint, payload.Fields) (*T, error)) error {
	id, ok, err := paramID(c)
	if !ok {
		return err
	}
	f, ok, err := parseBody(c)
	if !ok {
		return err
	}
	item, err := update(c.UserContext(), id, f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(item)
}

func deleteOne(c *fiber.Ctx, remove func(context.Context, uint) error, msg string) error {
	id, ok, err := paramID(c)
	if !ok {
		return err
	}
	if err := remove(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return deleted(c, msg)
}
