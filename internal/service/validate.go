package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/Skotchmaster/marketplace/internal/util"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func validateRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
		}
		return fmt.Errorf("%s: %w", strings.Join(fields, "; "), ErrInvalidArgument)
	}
	return fmt.Errorf("%v: %w", err, ErrInvalidArgument)
}

func parseID(name, raw string) (uuid.UUID, error) {
	id, err := util.ParseID(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s %q: %w", name, raw, ErrInvalidIdentifier)
	}
	return id, nil
}
