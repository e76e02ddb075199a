// Package pricing is the admin price calculator: a fixed rate table per
// service type with a line-item breakdown.
package pricing

import (
	"errors"
	"fmt"

	"wedding-liaison/internal/domain"
)

var ErrUnknownServiceType = errors.New("unknown service type")

type rates struct {
	basePrice   float64
	perHour     float64
	perPerson   float64
	premiumFlat float64
	// premiumPerPerson applies per guest (catering menu upgrade).
	premiumPerPerson float64
	// perExtraItem applies per additional item (extra photographers).
	perExtraItem float64
	standardFlat float64
}

var rateTable = map[domain.ServiceType]rates{
	domain.ServiceVenue:         {basePrice: 1000, perHour: 200, premiumFlat: 500},
	domain.ServiceCatering:      {basePrice: 500, perPerson: 45, premiumPerPerson: 15},
	domain.ServicePhotography:   {basePrice: 800, perHour: 150, perExtraItem: 350},
	domain.ServiceEntertainment: {basePrice: 600, perHour: 100, premiumFlat: 300},
	domain.ServiceDecoration:    {basePrice: 400, standardFlat: 300, premiumFlat: 800},
}

type Service interface {
	Quote(input domain.QuoteInput) (*domain.Quote, error)
}

type service struct{}

func NewService() Service {
	return &service{}
}

func (s *service) Quote(input domain.QuoteInput) (*domain.Quote, error) {
	var base, additional float64
	var details []string

	switch input.ServiceType {
	case domain.ServiceVenue:
		r := rateTable[domain.ServiceVenue]
		base = r.basePrice
		hourly := float64(input.Hours) * r.perHour
		additional = hourly
		details = append(details,
			fmt.Sprintf("Base venue fee: $%.2f", base),
			fmt.Sprintf("%d hours at $%.2f/hour: $%.2f", input.Hours, r.perHour, hourly))
		if input.Premium {
			additional += r.premiumFlat
			details = append(details, fmt.Sprintf("Premium location fee: $%.2f", r.premiumFlat))
		}

	case domain.ServiceCatering:
		r := rateTable[domain.ServiceCatering]
		base = r.basePrice
		perGuest := float64(input.Guests) * r.perPerson
		additional = perGuest
		details = append(details,
			fmt.Sprintf("Base catering service fee: $%.2f", base),
			fmt.Sprintf("%d guests at $%.2f/person: $%.2f", input.Guests, r.perPerson, perGuest))
		if input.Premium {
			upgrade := float64(input.Guests) * r.premiumPerPerson
			additional += upgrade
			details = append(details, fmt.Sprintf("Premium menu upgrade ($%.2f/person): $%.2f", r.premiumPerPerson, upgrade))
		}

	case domain.ServicePhotography:
		r := rateTable[domain.ServicePhotography]
		base = r.basePrice
		hourly := float64(input.Hours) * r.perHour
		additional = hourly
		details = append(details,
			fmt.Sprintf("Base photography package: $%.2f", base),
			fmt.Sprintf("%d hours at $%.2f/hour: $%.2f", input.Hours, r.perHour, hourly))
		if input.AdditionalItems > 0 {
			extra := float64(input.AdditionalItems) * r.perExtraItem
			additional += extra
			details = append(details, fmt.Sprintf("%d additional photographer(s): $%.2f", input.AdditionalItems, extra))
		}

	case domain.ServiceEntertainment:
		r := rateTable[domain.ServiceEntertainment]
		base = r.basePrice
		hourly := float64(input.Hours) * r.perHour
		additional = hourly
		details = append(details,
			fmt.Sprintf("Base entertainment fee: $%.2f", base),
			fmt.Sprintf("%d hours at $%.2f/hour: $%.2f", input.Hours, r.perHour, hourly))
		if input.Premium {
			additional += r.premiumFlat
			details = append(details, fmt.Sprintf("Premium entertainment package: $%.2f", r.premiumFlat))
		}

	case domain.ServiceDecoration:
		r := rateTable[domain.ServiceDecoration]
		base = r.basePrice
		details = append(details, fmt.Sprintf("Base decoration service fee: $%.2f", base))
		if input.Premium {
			additional = r.premiumFlat
			details = append(details, fmt.Sprintf("Premium decoration package: $%.2f", r.premiumFlat))
		} else {
			additional = r.standardFlat
			details = append(details, fmt.Sprintf("Standard decoration package: $%.2f", r.standardFlat))
		}

	case domain.ServiceCustom:
		base = input.CustomBase
		hourly := float64(input.Hours) * input.CustomRate
		additional = hourly
		details = append(details,
			fmt.Sprintf("Base custom service fee: $%.2f", base),
			fmt.Sprintf("%d hours at $%.2f/hour: $%.2f", input.Hours, input.CustomRate, hourly))

	default:
		return nil, ErrUnknownServiceType
	}

	return &domain.Quote{
		ServiceType:     input.ServiceType,
		BasePrice:       base,
		AdditionalCosts: additional,
		TotalPrice:      base + additional,
		Details:         details,
	}, nil
}
