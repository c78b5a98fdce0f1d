package catalog

import "errors"

var ErrNotFound = errors.New("product not found")

type Image struct {
	URL    string `json:"url"`
	IsMain bool   `json:"is_main"`
}

type Product struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Price         *int64  `json:"price,omitempty"`
	DiscountPrice *int64  `json:"discount_price,omitempty"`
	OriginalPrice *int64  `json:"original_price,omitempty"`
	Images        []Image `json:"images,omitempty"`
}

// UnitPrice is the price a shopper pays right now: the first set value of
// discount price, list price, original price; 0 when none is set.
func (p Product) UnitPrice() int64 {
	for _, v := range []*int64{p.DiscountPrice, p.Price, p.OriginalPrice} {
		if v != nil {
			return *v
		}
	}
	return 0
}

// MainImage prefers the image flagged as main, falls back to the first one.
func (p Product) MainImage() string {
	for _, im := range p.Images {
		if im.IsMain {
			return im.URL
		}
	}
	if len(p.Images) > 0 {
		return p.Images[0].URL
	}
	return ""
}
