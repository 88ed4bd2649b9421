package handler

import (
	"github.com/oladokun-o/engine/internal/core/domain"
	"github.com/oladokun-o/engine/internal/core/ports"
)

// --- Request → Service input ---

func toCreateOrderInput(req createOrderRequest, userID string) ports.CreateOrderInput {
	return ports.CreateOrderInput{
		UserID: userID,
		Location: domain.Location{
			Pickup:   toPlace(req.Location.Pickup),
			Delivery: toPlace(req.Location.Delivery),
		},
		Details: domain.Details{
			Sender: domain.Sender{
				Name:  req.Details.Sender.Name,
				Phone: req.Details.Sender.Phone,
				Email: req.Details.Sender.Email,
			},
			Recipient: domain.Recipient{
				FirstName: req.Details.Recipient.FirstName,
				LastName:  req.Details.Recipient.LastName,
				Phone:     req.Details.Recipient.Phone,
				Email:     req.Details.Recipient.Email,
			},
			Package: domain.Package{
				Title:          req.Details.Package.Title,
				Type:           req.Details.Package.Type,
				Quantity:       req.Details.Package.Quantity,
				Size:           req.Details.Package.Size,
				Image:          req.Details.Package.Image,
				ModeOfDelivery: req.Details.Package.ModeOfDelivery,
				Message:        req.Details.Package.Message,
			},
		},
		Payment: domain.Payment{Price: req.Payment.Price},
	}
}

func toPlace(p placeRequest) domain.Place {
	return domain.Place{
		Address:          p.Address,
		City:             p.City,
		State:            p.State,
		PostalCode:       p.PostalCode,
		FloorOrApartment: p.FloorOrApartment,
		Country:          p.Country,
		LocationType:     p.LocationType,
		Coordinates:      p.Coordinates,
		EstimatedTime:    p.EstimatedTime,
	}
}
