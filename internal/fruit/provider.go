package fruit

import (
	"fmt"
	"math/rand/v2"
	"os"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Iron-Ham/fruitfilter/internal/errors"
)

// MaxRows is the largest table a provider will produce.
const MaxRows = 30

// Data source names accepted by NewProvider.
const (
	SourceStatic = "static"
	SourceSeeded = "seeded"
	SourceFile   = "file"
)

// ValidSources returns the data source names accepted by NewProvider.
func ValidSources() []string {
	return []string{SourceStatic, SourceSeeded, SourceFile}
}

// Provider builds the base table once at startup.
type Provider interface {
	// Name identifies the provider in logs and errors.
	Name() string
	// Load returns the base table.
	Load() (*Table, error)
}

// ProviderOptions carries the settings every provider might need.
type ProviderOptions struct {
	Seed uint64
	Rows int
	Path string
}

// NewProvider returns the provider registered under source.
func NewProvider(source string, opts ProviderOptions) (Provider, error) {
	switch source {
	case SourceStatic, "":
		return StaticProvider{}, nil
	case SourceSeeded:
		return SeededProvider{Seed: opts.Seed, Rows: opts.Rows}, nil
	case SourceFile:
		return FileProvider{Path: opts.Path}, nil
	default:
		return nil, errors.NewDatasetError(source, errors.ErrUnknownSource)
	}
}

// StaticProvider serves the six demo fruit.
type StaticProvider struct{}

// Name implements Provider.
func (StaticProvider) Name() string { return SourceStatic }

// Load implements Provider.
func (StaticProvider) Load() (*Table, error) {
	return NewTable(DemoRecords()), nil
}

// DemoRecords returns the fixed demo dataset.
func DemoRecords() []Record {
	return []Record{
		{Fruit: "apple", Colour: "green", Hardness: "hard", Weight: 250, Expiry: Day(2023, 3, 31), Description: "This is a round fruit", Origin: "ontario", Shipper: "clive", Shipped: Day(2023, 2, 28)},
		{Fruit: "banana", Colour: "yellow", Hardness: "soft", Weight: 300, Expiry: Day(2023, 3, 10), Description: "This is a bendy fruit", Origin: "dominican republic", Shipper: "derek", Shipped: Day(2023, 2, 10)},
		{Fruit: "lemon", Colour: "yellow", Hardness: "hard", Weight: 200, Expiry: Day(2023, 3, 2), Description: "This is a citrus fruit", Origin: "florida", Shipper: "james", Shipped: Day(2023, 2, 2)},
		{Fruit: "strawberry", Colour: "red", Hardness: "soft", Weight: 40, Expiry: Day(2023, 3, 1), Description: "This is a delicious fruit", Origin: "ontario", Shipper: "ed", Shipped: Day(2023, 2, 1)},
		{Fruit: "cherry", Colour: "red", Hardness: "soft", Weight: 20, Expiry: Day(2023, 3, 21), Description: "This is a stone fruit", Origin: "bc", Shipper: "greg", Shipped: Day(2023, 2, 21)},
		{Fruit: "raspberry", Colour: "red", Hardness: "soft", Weight: 15, Expiry: Day(2023, 3, 11), Description: "This is a lovely fruit", Origin: "bc", Shipper: "alex", Shipped: Day(2023, 2, 11)},
	}
}

var (
	seedFruit = []string{
		"apple", "apricot", "banana", "blackberry", "blueberry", "cherry",
		"coconut", "cranberry", "date", "fig", "grape", "grapefruit",
		"guava", "kiwi", "lemon", "lime", "lychee", "mango",
		"melon", "nectarine", "orange", "papaya", "peach", "pear",
		"pineapple", "plum", "pomegranate", "raspberry", "strawberry", "watermelon",
	}
	seedColours     = []string{"green", "orange", "purple", "red", "yellow"}
	seedHardness    = []string{"hard", "soft"}
	seedAdjectives  = []string{"round", "bendy", "citrus", "delicious", "stone", "lovely", "tart", "juicy", "fuzzy", "tropical"}
	seedOrigins     = []string{"bc", "california", "chile", "dominican republic", "florida", "mexico", "ontario", "quebec"}
	seedShippers    = []string{"alex", "clive", "derek", "ed", "greg", "james", "maria", "priya", "sam"}
	seedExpiryStart = Day(2023, 3, 1)
)

// SeededProvider generates a deterministic pseudo-random table: the same
// Seed and Rows always yield the same records.
type SeededProvider struct {
	Seed uint64
	Rows int
}

// Name implements Provider.
func (SeededProvider) Name() string { return SourceSeeded }

// Load implements Provider.
func (p SeededProvider) Load() (*Table, error) {
	if p.Rows < 1 || p.Rows > MaxRows {
		return nil, errors.NewDatasetError(SourceSeeded,
			fmt.Errorf("%w: %d (want 1..%d)", errors.ErrRowCount, p.Rows, MaxRows))
	}

	rng := rand.New(rand.NewPCG(p.Seed, p.Seed^0x9e3779b97f4a7c15))
	names := slices.Clone(seedFruit)
	rng.Shuffle(len(names), func(i, j int) { names[i], names[j] = names[j], names[i] })

	records := make([]Record, p.Rows)
	for i := range records {
		expiry := seedExpiryStart.AddDate(0, 0, rng.IntN(31))
		records[i] = Record{
			Fruit:       names[i],
			Colour:      pick(rng, seedColours),
			Hardness:    pick(rng, seedHardness),
			Weight:      float64(5 * (1 + rng.IntN(80))),
			Expiry:      expiry,
			Description: fmt.Sprintf("This is a %s fruit", pick(rng, seedAdjectives)),
			Origin:      pick(rng, seedOrigins),
			Shipper:     pick(rng, seedShippers),
			Shipped:     expiry.AddDate(0, -1, -rng.IntN(5)),
		}
	}
	return NewTable(records), nil
}

func pick(rng *rand.Rand, values []string) string {
	return values[rng.IntN(len(values))]
}

// FileProvider reads records from a YAML dataset file:
//
//	records:
//	  - fruit: apple
//	    colour: green
//	    hardness: hard
//	    weight: 250
//	    expiry: 2023-03-31
//	    description: This is a round fruit
//	    origin: ontario
//	    shipper: clive
//	    shipped: 2023-02-28
type FileProvider struct {
	Path string
}

// Name implements Provider.
func (FileProvider) Name() string { return SourceFile }

// Load implements Provider.
func (p FileProvider) Load() (*Table, error) {
	data, err := os.ReadFile(p.Path)
	if err != nil {
		return nil, errors.NewDatasetError(SourceFile, err).WithPath(p.Path)
	}

	records, err := DecodeYAML(data)
	if err != nil {
		return nil, errors.NewDatasetError(SourceFile, err).WithPath(p.Path)
	}
	return NewTable(records), nil
}

// datasetFile is the YAML document shape shared by FileProvider and EncodeYAML.
type datasetFile struct {
	Records []recordDoc `yaml:"records"`
}

type recordDoc struct {
	Fruit       string  `yaml:"fruit"`
	Colour      string  `yaml:"colour"`
	Hardness    string  `yaml:"hardness"`
	Weight      float64 `yaml:"weight"`
	Expiry      string  `yaml:"expiry"`
	Description string  `yaml:"description"`
	Origin      string  `yaml:"origin"`
	Shipper     string  `yaml:"shipper"`
	Shipped     string  `yaml:"shipped"`
}

// DecodeYAML parses a dataset document, validating every record.
func DecodeYAML(data []byte) ([]Record, error) {
	var doc datasetFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing dataset: %w", err)
	}
	if len(doc.Records) == 0 {
		return nil, errors.ErrEmptyDataset
	}
	if len(doc.Records) > MaxRows {
		return nil, fmt.Errorf("%w: %d (want 1..%d)", errors.ErrRowCount, len(doc.Records), MaxRows)
	}

	records := make([]Record, 0, len(doc.Records))
	for i, d := range doc.Records {
		expiry, err := parseDocDate(d.Expiry)
		if err != nil {
			return nil, fmt.Errorf("record %d: expiry: %w", i+1, err)
		}
		shipped, err := parseDocDate(d.Shipped)
		if err != nil {
			return nil, fmt.Errorf("record %d: shipped: %w", i+1, err)
		}
		r := Record{
			Fruit:       d.Fruit,
			Colour:      d.Colour,
			Hardness:    d.Hardness,
			Weight:      d.Weight,
			Expiry:      expiry,
			Description: d.Description,
			Origin:      d.Origin,
			Shipper:     d.Shipper,
			Shipped:     shipped,
		}
		if err := r.validate(); err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
		records = append(records, r)
	}
	return records, nil
}

func parseDocDate(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, errors.ErrInvalidRecord
	}
	return ParseDate(s)
}

// EncodeYAML renders records in the format DecodeYAML reads.
func EncodeYAML(records []Record) ([]byte, error) {
	doc := datasetFile{Records: make([]recordDoc, len(records))}
	for i, r := range records {
		doc.Records[i] = recordDoc{
			Fruit:       r.Fruit,
			Colour:      r.Colour,
			Hardness:    r.Hardness,
			Weight:      r.Weight,
			Expiry:      r.Value(ColExpiry),
			Description: r.Description,
			Origin:      r.Origin,
			Shipper:     r.Shipper,
			Shipped:     r.Value(ColShipped),
		}
	}
	return yaml.Marshal(doc)
}
