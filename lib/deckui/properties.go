// Copyright 2026 The Estatedeck Authors
// SPDX-License-Identifier: Apache-2.0

package deckui

import (
	"context"
	"strconv"

	"github.com/estatedeck/estatedeck/lib/api"
	"github.com/estatedeck/estatedeck/lib/schema/rental"
)

// propertyTypeOptions are the unit categories the server accepts.
var propertyTypeOptions = []SelectOption{
	{Label: "Apartment", Value: "apartment"},
	{Label: "House", Value: "house"},
	{Label: "Condo", Value: "condo"},
	{Label: "Townhouse", Value: "townhouse"},
	{Label: "Commercial", Value: "commercial"},
	{Label: "Other", Value: "other"},
}

var listingTypeOptions = []SelectOption{
	{Label: "For rent", Value: rental.ListingRent},
	{Label: "For sale", Value: rental.ListingSell},
}

var propertyStatusOptions = []SelectOption{
	{Label: "Available", Value: rental.PropertyAvailable},
	{Label: "Occupied", Value: rental.PropertyOccupied},
	{Label: "Maintenance", Value: rental.PropertyMaintenance},
}

// propertiesConfig builds the properties screen configuration.
func propertiesConfig() resourceConfig {
	return resourceConfig{
		screen: ScreenProperties,
		columns: []tableColumn{
			{title: "Title", width: 24},
			{title: "City", width: 14},
			{title: "Type", width: 10},
			{title: "Listing", width: 8},
			{title: "Price", width: 12},
			{title: "Status", width: 12},
		},
		fetch:        fetchProperties,
		buildForm:    buildPropertyForm,
		buildPayload: propertyPayload,
		create: func(ctx context.Context, client *api.Client, payload map[string]any) error {
			return client.CreateProperty(ctx, payload)
		},
		update: func(ctx context.Context, client *api.Client, id string, payload map[string]any) error {
			return client.UpdateProperty(ctx, id, payload)
		},
		remove: func(ctx context.Context, client *api.Client, id string) error {
			return client.DeleteProperty(ctx, id)
		},
	}
}

func fetchProperties(ctx context.Context, deps *Deps) (resourceData, error) {
	properties, err := deps.Client.ListProperties(ctx)
	if err != nil {
		return resourceData{}, err
	}

	data := resourceData{seeds: make(map[string]map[string]string, len(properties))}
	for _, property := range properties {
		price := displayMoney(property.RentAmount)
		if property.ListingType == rental.ListingSell {
			price = displayMoney(property.SalePrice)
		}
		data.rows = append(data.rows, tableRow{
			id: property.ID,
			cells: []string{
				property.Title,
				property.Address.City,
				property.PropertyType,
				property.ListingType,
				price,
				property.Status,
			},
			searchText: searchText(property.Title, property.Address.City, property.Address.Street, property.PropertyType, property.Status),
		})
		data.seeds[property.ID] = map[string]string{
			"title":         property.Title,
			"description":   property.Description,
			"street":        property.Address.Street,
			"city":          property.Address.City,
			"state":         property.Address.State,
			"zipCode":       property.Address.ZipCode,
			"country":       property.Address.Country,
			"propertyType":  property.PropertyType,
			"type":          property.ListingType,
			"bedrooms":      strconv.Itoa(property.Bedrooms),
			"bathrooms":     strconv.Itoa(property.Bathrooms),
			"area":          property.Area,
			"rentAmount":    strconv.FormatFloat(property.RentAmount, 'f', -1, 64),
			"salePrice":     strconv.FormatFloat(property.SalePrice, 'f', -1, 64),
			"status":        property.Status,
			"company":       property.Company,
			"parkingSpaces": strconv.Itoa(property.ParkingSpaces),
			"yearBuilt":     strconv.Itoa(property.YearBuilt),
		}
	}
	return data, nil
}

func buildPropertyForm(data resourceData, editingID string) *Form {
	seed := data.seeds[editingID]
	value := func(fieldKey string) string { return seed[fieldKey] }

	title := "New property"
	if editingID != "" {
		title = "Edit property"
	}

	return NewForm(title, []FormField{
		TextField("title", "Title", value("title"), true),
		TextField("description", "Description", value("description"), false),
		TextField("street", "Street", value("street"), true),
		TextField("city", "City", value("city"), true),
		TextField("state", "State", value("state"), true),
		TextField("zipCode", "Zip code", value("zipCode"), true),
		TextField("country", "Country", value("country"), true),
		SelectField("propertyType", "Property type", propertyTypeOptions, value("propertyType"), true),
		SelectField("type", "Listing", listingTypeOptions, value("type"), true),
		TextField("bedrooms", "Bedrooms", value("bedrooms"), false),
		TextField("bathrooms", "Bathrooms", value("bathrooms"), false),
		TextField("area", "Area (sq ft)", value("area"), false),
		TextField("rentAmount", "Rent amount", value("rentAmount"), false),
		TextField("salePrice", "Sale price", value("salePrice"), false),
		SelectField("status", "Status", propertyStatusOptions, value("status"), true),
		TextField("company", "Company", value("company"), false),
		TextField("parkingSpaces", "Parking spaces", value("parkingSpaces"), false),
		TextField("yearBuilt", "Year built", value("yearBuilt"), false),
	})
}

// propertyPayload builds the property request body. The price field
// that doesn't apply to the listing type is dropped entirely so a
// rental listing never carries a stale sale price (and vice versa).
func propertyPayload(values map[string]string, editingID string, data resourceData) map[string]any {
	payload := map[string]any{
		"title":       values["title"],
		"description": values["description"],
		"address": map[string]any{
			"street":  values["street"],
			"city":    values["city"],
			"state":   values["state"],
			"zipCode": values["zipCode"],
			"country": values["country"],
		},
		"propertyType":  values["propertyType"],
		"type":          values["type"],
		"bedrooms":      parseCount(values["bedrooms"]),
		"bathrooms":     parseCount(values["bathrooms"]),
		"area":          values["area"],
		"status":        values["status"],
		"company":       values["company"],
		"parkingSpaces": parseCount(values["parkingSpaces"]),
		"yearBuilt":     parseCount(values["yearBuilt"]),
	}

	switch values["type"] {
	case rental.ListingSell:
		payload["salePrice"] = parseAmount(values["salePrice"])
	default:
		payload["rentAmount"] = parseAmount(values["rentAmount"])
	}
	return payload
}
