package suggestions

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/mtgkit/edh-companion/internal/commander"
)

// CommanderEntry is a dataset-backed view of one commander: the canonical
// key, raw payload fields, and the converted descriptor used for mode
// resolution and scoring.
type CommanderEntry struct {
	Key         string
	Name        string
	DisplayName string
	Themes      []string
	RoleTags    []string
	Commander   *commander.Commander
}

// Label returns the entry's display name, falling back to the raw name.
func (e *CommanderEntry) Label() string {
	if e.DisplayName != "" {
		return e.DisplayName
	}
	return e.Name
}

// PartnerDataset is the parsed suggestion dataset: commander entries, an
// alias index, and observed pairing counts.
type PartnerDataset struct {
	Metadata map[string]any
	Entries  []*CommanderEntry
	Pairings *PairingIndex

	byAlias map[string]*CommanderEntry
}

// Lookup resolves a commander name against the canonical key, display name,
// and raw name, all case- and whitespace-normalized.
func (d *PartnerDataset) Lookup(name string) (*CommanderEntry, bool) {
	entry, ok := d.byAlias[commander.NormalizeName(name)]
	return entry, ok
}

// PairingIndex stores observed pairing counts keyed symmetrically: the count
// for (A,B) is found regardless of which side was primary in the record.
type PairingIndex struct {
	counts map[string]int
}

// NewPairingIndex creates an empty index.
func NewPairingIndex() *PairingIndex {
	return &PairingIndex{counts: make(map[string]int)}
}

// Add records an observed pairing. Non-positive counts are ignored; repeated
// records for the same pair accumulate.
func (p *PairingIndex) Add(mode commander.PartnerMode, a, b string, count int) {
	if count <= 0 || mode == commander.ModeNone {
		return
	}
	p.counts[pairingKey(mode, a, b)] += count
}

// Count returns the observed count for a pair under a mode, or zero.
func (p *PairingIndex) Count(mode commander.PartnerMode, a, b string) int {
	if p == nil {
		return 0
	}
	return p.counts[pairingKey(mode, a, b)]
}

func pairingKey(mode commander.PartnerMode, a, b string) string {
	na, nb := commander.NormalizeName(a), commander.NormalizeName(b)
	if na > nb {
		na, nb = nb, na
	}
	return string(mode) + "|" + na + "|" + nb
}

// Raw JSON shapes of the dataset file.
type datasetFile struct {
	Metadata   map[string]any              `json:"metadata"`
	Commanders map[string]commanderPayload `json:"commanders"`
	Pairings   struct {
		Records []pairingRecord `json:"records"`
	} `json:"pairings"`
}

type commanderPayload struct {
	Name          string         `json:"name"`
	DisplayName   string         `json:"display_name"`
	ColorIdentity []string       `json:"color_identity"`
	Themes        []string       `json:"themes"`
	RoleTags      []string       `json:"role_tags"`
	Partner       partnerPayload `json:"partner"`
}

type partnerPayload struct {
	HasPartner              bool     `json:"has_partner"`
	PartnerWith             []string `json:"partner_with"`
	SupportsBackgrounds     bool     `json:"supports_backgrounds"`
	IsBackground            bool     `json:"is_background"`
	IsDoctor                bool     `json:"is_doctor"`
	IsDoctorsCompanion      bool     `json:"is_doctors_companion"`
	RestrictedPartnerLabels []string `json:"restricted_partner_labels"`
}

type pairingRecord struct {
	Mode               string `json:"mode"`
	PrimaryCanonical   string `json:"primary_canonical"`
	SecondaryCanonical string `json:"secondary_canonical"`
	Count              int    `json:"count"`
}

// ParseDataset parses the dataset JSON. Individual malformed commander rows
// or pairing records are skipped; only a structurally invalid document (bad
// JSON, or no commanders mapping) is an error. Entries are ordered by
// canonical key so iteration is deterministic.
func ParseDataset(data []byte) (*PartnerDataset, error) {
	var file datasetFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse partner dataset: %w", err)
	}
	if file.Commanders == nil {
		return nil, fmt.Errorf("partner dataset has no commanders section")
	}

	dataset := &PartnerDataset{
		Metadata: file.Metadata,
		Pairings: NewPairingIndex(),
		byAlias:  make(map[string]*CommanderEntry, len(file.Commanders)*2),
	}
	if dataset.Metadata == nil {
		dataset.Metadata = map[string]any{}
	}

	keys := make([]string, 0, len(file.Commanders))
	for key := range file.Commanders {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		payload := file.Commanders[key]
		entry, ok := buildEntry(key, payload)
		if !ok {
			continue
		}
		dataset.Entries = append(dataset.Entries, entry)
		for _, alias := range []string{key, entry.Name, entry.DisplayName} {
			if normalized := commander.NormalizeName(alias); normalized != "" {
				dataset.byAlias[normalized] = entry
			}
		}
	}

	// Records may name commanders by canonical key, raw name, or display
	// name; resolve each side through the alias index so counts land under
	// the same normalized name the scorer queries with.
	for _, record := range file.Pairings.Records {
		mode := commander.ParseMode(record.Mode)
		if mode == commander.ModeNone {
			continue
		}
		primary := record.PrimaryCanonical
		if entry, ok := dataset.Lookup(primary); ok {
			primary = entry.Name
		}
		secondary := record.SecondaryCanonical
		if entry, ok := dataset.Lookup(secondary); ok {
			secondary = entry.Name
		}
		dataset.Pairings.Add(mode, primary, secondary, record.Count)
	}

	return dataset, nil
}

// buildEntry converts a raw payload into an entry, rejecting rows with no
// usable name.
func buildEntry(key string, payload commanderPayload) (*CommanderEntry, bool) {
	name := strings.TrimSpace(payload.Name)
	if name == "" {
		name = strings.TrimSpace(payload.DisplayName)
	}
	if name == "" {
		return nil, false
	}

	restricted := payload.Partner.RestrictedPartnerLabels
	cmd := &commander.Commander{
		Name:                    name,
		DisplayName:             payload.DisplayName,
		ColorIdentity:           commander.CanonicalColors(payload.ColorIdentity),
		ThemeTags:               payload.Themes,
		PartnerWith:             payload.Partner.PartnerWith,
		HasPartner:              payload.Partner.HasPartner,
		HasPlainPartner:         payload.Partner.HasPartner && len(restricted) == 0,
		SupportsBackgrounds:     payload.Partner.SupportsBackgrounds,
		IsBackground:            payload.Partner.IsBackground,
		IsDoctor:                payload.Partner.IsDoctor,
		IsDoctorsCompanion:      payload.Partner.IsDoctorsCompanion,
		RestrictedPartnerLabels: restricted,
	}
	if err := cmd.Validate(); err != nil {
		return nil, false
	}

	return &CommanderEntry{
		Key:         key,
		Name:        name,
		DisplayName: payload.DisplayName,
		Themes:      payload.Themes,
		RoleTags:    payload.RoleTags,
		Commander:   cmd,
	}, true
}
