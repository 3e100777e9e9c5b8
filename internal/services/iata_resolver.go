package services

import (
	"context"
	"embed"
	"encoding/csv"
	"strings"
	"sync"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"smarttravel/pkg/logger"
	"smarttravel/pkg/utils"
)

//go:embed data/airports.csv
var airportData embed.FS

type airportTable struct {
	byCity map[string]string
	names  map[string]string
}

var airports = sync.OnceValue(func() airportTable {
	t := airportTable{byCity: map[string]string{}, names: map[string]string{}}

	f, err := airportData.Open("data/airports.csv")
	if err != nil {
		return t
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return t
	}
	for i, row := range rows {
		if i == 0 || len(row) < 3 {
			continue
		}
		code := strings.ToUpper(strings.TrimSpace(row[0]))
		if _, ok := t.names[code]; !ok {
			t.names[code] = strings.TrimSpace(row[1])
		}
		city := foldName(row[2])
		if _, ok := t.byCity[city]; !ok && city != "" {
			t.byCity[city] = code
		}
	}
	return t
})

func stripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.NewReplacer("Đ", "D", "đ", "d").Replace(out)
}

// foldName upper-cases s and removes diacritics, so "Đà Nẵng" and "da nang"
// compare equal.
func foldName(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(stripAccents(s)), " "))
}

// AirportName returns the display name of an airport, or the code itself
// when it is not in the table.
func AirportName(code string) string {
	if name, ok := airports().names[strings.ToUpper(code)]; ok {
		return name
	}
	return code
}

type LocationSearcher interface {
	SearchLocations(ctx context.Context, keyword string) ([]utils.AmadeusLocation, error)
}

type IATAResolverInterface interface {
	ResolveIATA(ctx context.Context, nameOrCode string) string
}

type IATAResolver struct {
	locations LocationSearcher
	log       *zap.Logger
}

func NewIATAResolver(locations LocationSearcher, log *zap.Logger) IATAResolverInterface {
	return &IATAResolver{locations: locations, log: log}
}

// ResolveIATA never fails: anything it cannot map is returned upper-cased.
func (r *IATAResolver) ResolveIATA(ctx context.Context, nameOrCode string) string {
	input := strings.TrimSpace(nameOrCode)
	if isIATACode(input) {
		return strings.ToUpper(input)
	}

	if code, ok := airports().byCity[foldName(input)]; ok {
		return code
	}

	if r.locations != nil && input != "" {
		locs, err := r.locations.SearchLocations(ctx, stripAccents(input))
		if err != nil {
			logger.For(ctx, r.log).Debug("location search failed", zap.String("keyword", input), zap.Error(err))
		}
		if code := pickLocation(locs); code != "" {
			return code
		}
	}

	return strings.ToUpper(input)
}

func isIATACode(s string) bool {
	if len(s) != 3 {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func pickLocation(locs []utils.AmadeusLocation) string {
	for _, l := range locs {
		if strings.EqualFold(l.SubType, "CITY") && l.IATACode != "" {
			return strings.ToUpper(l.IATACode)
		}
	}
	for _, l := range locs {
		if l.IATACode != "" {
			return strings.ToUpper(l.IATACode)
		}
	}
	return ""
}
