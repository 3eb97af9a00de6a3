package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	mybusinessaccount "google.golang.org/api/mybusinessaccountmanagement/v1"
	mybusinessinfo "google.golang.org/api/mybusinessbusinessinformation/v1"
	"google.golang.org/api/option"
)

// locationReadMask limits each location payload to the fields the importer
// maps onto Business rows.
const locationReadMask = "name,title,storefrontAddress,categories,websiteUri,phoneNumbers,latlng,profile"

const gmbPageSize = 100

type GMBAccount struct {
	Resource string // "accounts/1234567890"
	Title    string
}

type GMBLocation struct {
	Resource     string // "accounts/123/locations/456"
	Title        string
	Address      string
	Locality     string
	Region       string
	CategoryName string
	Website      string
	Phone        string
	Latitude     float64
	Longitude    float64
	Description  string
	Raw          json.RawMessage
}

type GMBClientInterface interface {
	ListAccounts(ctx context.Context) ([]GMBAccount, error)
	ListLocations(ctx context.Context, accountResource string) ([]GMBLocation, error)
}

type GMBClient struct {
	accounts *mybusinessaccount.Service
	info     *mybusinessinfo.Service
}

func NewGMBClient(ctx context.Context, apiKey string) (*GMBClient, error) {
	accounts, err := mybusinessaccount.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create account management service: %w", err)
	}
	info, err := mybusinessinfo.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create business information service: %w", err)
	}
	return &GMBClient{accounts: accounts, info: info}, nil
}

func (c *GMBClient) ListAccounts(ctx context.Context) ([]GMBAccount, error) {
	var out []GMBAccount
	pageToken := ""
	for {
		call := c.accounts.Accounts.List().PageSize(gmbPageSize).Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		resp, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("list accounts failed: %w", err)
		}
		for _, account := range resp.Accounts {
			out = append(out, GMBAccount{Resource: account.Name, Title: account.AccountName})
		}
		if resp.NextPageToken == "" {
			return out, nil
		}
		pageToken = resp.NextPageToken
	}
}

func (c *GMBClient) ListLocations(ctx context.Context, accountResource string) ([]GMBLocation, error) {
	var out []GMBLocation
	pageToken := ""
	for {
		call := c.info.Accounts.Locations.List(accountResource).
			ReadMask(locationReadMask).
			PageSize(gmbPageSize).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		resp, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("list locations for %s failed: %w", accountResource, err)
		}
		for _, location := range resp.Locations {
			out = append(out, mapLocation(accountResource, location))
		}
		if resp.NextPageToken == "" {
			return out, nil
		}
		pageToken = resp.NextPageToken
	}
}

func mapLocation(accountResource string, location *mybusinessinfo.Location) GMBLocation {
	// The list call returns relative names ("locations/456"); the stored
	// resource keeps the owning account so re-imports stay unambiguous.
	resource := location.Name
	if !strings.HasPrefix(resource, "accounts/") {
		resource = accountResource + "/" + resource
	}

	mapped := GMBLocation{
		Resource: resource,
		Title:    location.Title,
		Website:  location.WebsiteUri,
	}

	if addr := location.StorefrontAddress; addr != nil {
		parts := append([]string{}, addr.AddressLines...)
		if addr.Locality != "" {
			parts = append(parts, addr.Locality)
		}
		if addr.AdministrativeArea != "" {
			parts = append(parts, addr.AdministrativeArea)
		}
		mapped.Address = strings.Join(parts, ", ")
		mapped.Locality = addr.Locality
		mapped.Region = addr.AdministrativeArea
	}
	if location.Categories != nil && location.Categories.PrimaryCategory != nil {
		mapped.CategoryName = location.Categories.PrimaryCategory.DisplayName
	}
	if location.PhoneNumbers != nil {
		mapped.Phone = location.PhoneNumbers.PrimaryPhone
	}
	if location.Latlng != nil {
		mapped.Latitude = location.Latlng.Latitude
		mapped.Longitude = location.Latlng.Longitude
	}
	if location.Profile != nil {
		mapped.Description = location.Profile.Description
	}
	if raw, err := json.Marshal(location); err == nil {
		mapped.Raw = raw
	}

	return mapped
}
