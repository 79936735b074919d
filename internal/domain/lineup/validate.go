package lineup

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateJerseyOptions checks hex colors and the pattern enum.
func ValidateJerseyOptions(opts JerseyOptions) error {
	if err := validate.Struct(opts); err != nil {
		return fmt.Errorf("invalid jersey options: %s", describe(err))
	}
	return nil
}

// ValidateColor checks a single hex color.
func ValidateColor(color string) error {
	if err := validate.Var(color, "required,hexcolor"); err != nil {
		return fmt.Errorf("invalid color %q", color)
	}
	return nil
}

// ValidatePresentation checks every range of the visual layout.
func ValidatePresentation(p Presentation) error {
	if p.ActiveFieldVariant < 0 || p.ActiveFieldVariant >= FieldVariantCount {
		return fmt.Errorf("field variant must be in [0,%d)", FieldVariantCount)
	}
	if !p.PaperRadius.Valid() {
		return fmt.Errorf("paper radius %q is not one of xs, sm, md, lg, xl", p.PaperRadius)
	}
	if err := ValidateFieldScale(p.FieldScale); err != nil {
		return err
	}
	if err := ValidateBackgroundPosition(p.BackgroundPositionX, p.BackgroundPositionY); err != nil {
		return err
	}
	return ValidateFieldPositionY(p.FieldPositionY)
}

func ValidateFieldScale(s float64) error {
	if s < MinFieldScale || s > MaxFieldScale {
		return fmt.Errorf("field scale must be in [%.1f,%.1f]", MinFieldScale, MaxFieldScale)
	}
	return nil
}

func ValidateBackgroundPosition(x, y float64) error {
	if x < 0 || x > 100 || y < 0 || y > 100 {
		return fmt.Errorf("background position must be in [0,100]")
	}
	return nil
}

func ValidateFieldPositionY(y int) error {
	if y < MinFieldPositionY || y > MaxFieldPositionY {
		return fmt.Errorf("field position must be in [%d,%d]", MinFieldPositionY, MaxFieldPositionY)
	}
	return nil
}

// ValidatePlayers checks each entry and the single captain rule.
func ValidatePlayers(r Roster) error {
	for slotID, p := range r {
		if err := validate.Struct(p); err != nil {
			return fmt.Errorf("player %q: %s", slotID, describe(err))
		}
	}
	if r.CaptainCount() > 1 {
		return fmt.Errorf("only one captain is allowed")
	}
	return nil
}

func describe(err error) string {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrs) == 0 {
		return err.Error()
	}
	parts := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		parts = append(parts, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
	}
	return strings.Join(parts, ", ")
}
