package presenter

import (
	"encoding/json"
	"io"

	"github.com/chronotask/chronotask/internal/application/port/output"
)

// JSONPresenter implements output.Presenter, formatting every result as a
// single JSON object for programmatic consumption.
type JSONPresenter struct {
	output io.Writer
}

// NewJSONPresenter creates a JSON presenter writing to w.
func NewJSONPresenter(w io.Writer) output.Presenter {
	return &JSONPresenter{output: w}
}

func (p *JSONPresenter) PresentSuccess(message string, data interface{}) error {
	result := map[string]interface{}{
		"success": true,
		"message": message,
		"data":    data,
	}
	return json.NewEncoder(p.output).Encode(result)
}

func (p *JSONPresenter) PresentError(err error) error {
	result := map[string]interface{}{
		"success": false,
		"error":   err.Error(),
	}
	_ = json.NewEncoder(p.output).Encode(result)
	return err
}
