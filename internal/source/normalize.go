package source

import (
	"fmt"
	"strconv"

	"github.com/rickgao/lob-response/internal/model"
)

// ParseKind maps a single-letter exchange code to an event kind.
func ParseKind(code string) (model.EventKind, error) {
	switch code {
	case "B":
		return model.KindAddBuy, nil
	case "S":
		return model.KindAddSell, nil
	case "E":
		return model.KindExecutePartial, nil
	case "C":
		return model.KindCancelPartial, nil
	case "F":
		return model.KindExecuteFull, nil
	case "D":
		return model.KindDeleteFull, nil
	case "X":
		return model.KindCrossTrade, nil
	case "T":
		return model.KindExecuteHidden, nil
	}
	return model.KindUnknown, fmt.Errorf("unknown event code %q", code)
}

// normalize maps one decoded CSV record into an Event. Fields: timestamp in
// ms, order id, letter code, shares, fixed-point price.
func normalize(ts, order, code, shares, price string) (model.Event, error) {
	kind, err := ParseKind(code)
	if err != nil {
		return model.Event{}, err
	}
	t, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return model.Event{}, fmt.Errorf("parse timestamp %q: %w", ts, err)
	}
	id, err := strconv.ParseUint(order, 10, 64)
	if err != nil {
		return model.Event{}, fmt.Errorf("parse order id %q: %w", order, err)
	}
	qty, err := strconv.ParseInt(shares, 10, 64)
	if err != nil {
		return model.Event{}, fmt.Errorf("parse shares %q: %w", shares, err)
	}
	p, err := strconv.ParseInt(price, 10, 64)
	if err != nil {
		return model.Event{}, fmt.Errorf("parse price %q: %w", price, err)
	}
	return model.Event{
		Timestamp: t,
		OrderID:   id,
		Kind:      kind,
		Quantity:  qty,
		Price:     p,
	}, nil
}
