package showtimes

import (
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// TimeLayout is the wall-clock form showtime start times are stored in.
const TimeLayout = "15:04"

// HHMM is a validator.Func accepting 24h wall-clock times like "09:30" or
// "21:00". Anything time.Parse rejects for the layout ("9:30", "24:00") fails.
func HHMM(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if len(value) != len(TimeLayout) {
		return false
	}
	_, err := time.Parse(TimeLayout, value)
	return err == nil
}

// RegisterValidators installs the custom rules on gin's binding engine so any
// bound request can use the hhmm tag. Called once at startup.
func RegisterValidators() error {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		return v.RegisterValidation("hhmm", HHMM)
	}
	return nil
}
