package req

import (
	"fmt"
	"net/url"
)

// A Parser decodes query params into structs and validates them.
type Parser struct {
	queryParamDecoder queryParamDecoder
	validator
}

func NewParser() *Parser {
	return &Parser{
		queryParamDecoder: newQueryParamDecoder(),
		validator:         newValidator(),
	}
}

// ParseQueryParams decodes params into a pointer to a struct.
// If successful, ParseQueryParams runs validation against the contents,
// returning an ErrNotValid if the data fails validation rules.
func (p *Parser) ParseQueryParams(params url.Values, structPtr any) error {
	if err := p.queryParamDecoder.decode(structPtr, params); err != nil {
		return fmt.Errorf("cryptodash/http/req: failed decoding request query params: %w", err)
	}

	if err := p.validate(structPtr); err != nil {
		return fmt.Errorf("cryptodash/http/req: %T failed validation: %w", structPtr, err)
	}

	return nil
}
