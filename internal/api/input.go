package api

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/nikmy/sift/internal/users"
	"github.com/nikmy/sift/pkg/errors"
	"github.com/nikmy/sift/pkg/filters"
)

// parseInput turns query parameters into a sparse filter input for the
// declared user filter set. Absent parameters stay absent; when
// nothing was supplied the input itself is nil, the empty filter.
func parseInput(c *fiber.Ctx) (filters.Input, error) {
	input := filters.Input{}

	for _, name := range []string{"minAge", "maxAge", "exactAge"} {
		raw := c.Query(name)
		if raw == "" {
			continue
		}

		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, errors.WrapFail(err, "parse "+name)
		}
		input[name] = n
	}

	if raw := c.Query("search"); raw != "" {
		input["search"] = raw
	}

	if raw := c.Query("role"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, errors.WrapFail(err, "parse role")
		}
		input["role"] = users.Role(n)
	}

	if raw := c.Query("hasEmail"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, errors.WrapFail(err, "parse hasEmail")
		}
		input["hasEmail"] = b
	}

	if raw := c.Query("ageIn"); raw != "" {
		var ages []int
		for _, part := range strings.Split(raw, ",") {
			n, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				return nil, errors.WrapFail(err, "parse ageIn")
			}
			ages = append(ages, n)
		}
		input["ageIn"] = ages
	}

	if len(input) == 0 {
		return nil, nil
	}

	return input, nil
}
