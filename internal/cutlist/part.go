// =============================================================================
// TigerTamer - Part Records
// =============================================================================
//
// A PartRecord is one cut-part entry from a Mozaik cutlist row: how many to
// cut, from what stock width, at what length, plus the part type, the packed
// location code, and an optional free-text note.
//
// Upstream counts are unreliable: Mozaik sometimes writes a count that
// disagrees with the quantities encoded in the location string. Whenever a
// record addresses multiple rooms or cabs, the count is recomputed from the
// location annotations at construction time (see fixQuantity). This
// self-healing is deliberate and silent apart from a diagnostic.
//
// =============================================================================

package cutlist

import (
	"fmt"
	"strconv"
	"strings"
)

// MasterHeader is the column layout of a Mozaik master (.dat) row.
var MasterHeader = [6]string{"count", "width", "length", "type", "no", "extra_data"}

// PartRecord holds a single cut-part entry. Width is empty for records scoped
// to a WidthFile, where the width is implied by the file.
type PartRecord struct {
	Count    int
	Width    string
	Length   string
	Type     string
	Location string
	Note     string
}

// NewPart builds a PartRecord from the six positional row fields, trimming
// whitespace and coercing the count. A count that is not an integer is the
// one fatal construction error; a missing location is tolerated with a
// diagnostic because the remaining fields may still be useful downstream.
func NewPart(count, width, length, typ, location, note string) (*PartRecord, error) {
	n, err := strconv.Atoi(strings.TrimSpace(count))
	if err != nil {
		return nil, fmt.Errorf("invalid count %q: %w", count, err)
	}
	p := &PartRecord{
		Count:    n,
		Width:    strings.TrimSpace(width),
		Length:   strings.TrimSpace(length),
		Type:     strings.TrimSpace(typ),
		Location: strings.TrimSpace(location),
		Note:     strings.TrimSpace(note),
	}
	if p.Location == "" {
		log.Debugw("empty cab number", "part", p.String())
	}
	p.fixQuantity()
	return p, nil
}

// fixQuantity recomputes Count from the location's quantity annotations when
// the location addresses multiple rooms or cabs. The caller-supplied count is
// overwritten in that case — upstream data double-counts annotated rows often
// enough that the location string is the more trustworthy source. A count on
// a single unambiguous location is left alone; "3 identical, unlabeled
// duplicates" is valid data.
func (p *PartRecord) fixQuantity() {
	if !HasMulti(p.Location) {
		return
	}
	total := 0
	for _, roomPart := range strings.Fields(p.Location) {
		for _, cab := range strings.Split(roomPart, "&") {
			total += ExtractQuantity(cab)
		}
	}
	if total != p.Count {
		log.Debugw("corrected part count",
			"location", p.Location,
			"given", p.Count,
			"corrected", total,
		)
	}
	p.Count = total
}

// Copy returns a field-wise clone.
func (p *PartRecord) Copy() *PartRecord {
	c := *p
	return &c
}

// Equal reports whether every field matches exactly, count included.
func (p *PartRecord) Equal(other *PartRecord) bool {
	if other == nil {
		return false
	}
	return *p == *other
}

// SimilarPart reports whether `other` describes the same physical part as
// this record, differing only in count and the quantity annotation inside
// the location. A record is never similar to itself.
func (p *PartRecord) SimilarPart(other *PartRecord) bool {
	if other == nil || other == p {
		return false
	}
	if p.Width != other.Width || p.Length != other.Length {
		return false
	}
	if p.Type != other.Type || p.Note != other.Note {
		return false
	}
	return StripQuantity(p.Location) == StripQuantity(other.Location)
}

// Split expands a multi-room/multi-cab record into atomic records, one per
// room+cab combination. Single-location records come back untouched as a
// one-element slice, count included.
func (p *PartRecord) Split() []*PartRecord {
	if !HasMulti(p.Location) {
		return []*PartRecord{p}
	}
	return p.splitRoomCabs(p.splitRooms())
}

// splitRooms splits a possibly multi-room record into one record per
// room-part. Each room-part's count is the number of '&'-joined extra cabs
// plus the annotated quantity; it is provisional and rewritten per cab in
// splitRoomCabs.
func (p *PartRecord) splitRooms() []*PartRecord {
	if !HasMultiRoom(p.Location) {
		return []*PartRecord{p}
	}
	roomNos := strings.Fields(p.Location)
	if len(roomNos) == 1 {
		return []*PartRecord{p.Copy()}
	}
	log.Debugw("multiple rooms", "location", p.Location)
	parts := make([]*PartRecord, 0, len(roomNos))
	for _, roomNo := range roomNos {
		part := p.Copy()
		part.Location = roomNo
		part.Count = strings.Count(roomNo, "&") + ExtractQuantity(roomNo)
		parts = append(parts, part)
	}
	split := 0
	for _, part := range parts {
		split += part.Count
	}
	if split != p.Count {
		log.Debugw("splitting rooms changed count",
			"location", p.Location,
			"original", p.Count,
			"split", split,
		)
	}
	return parts
}

// splitRoomCabs splits each single-room record into one record per cabinet.
// A room-part that still spans rooms here means the upstream string was
// mis-grouped; those are deferred, re-split on rooms, and run through this
// pass again.
func (p *PartRecord) splitRoomCabs(roomParts []*PartRecord) []*PartRecord {
	var cabParts []*PartRecord
	var multiRoom []*PartRecord
	for _, roomPart := range roomParts {
		if HasMultiRoom(roomPart.Location) {
			log.Debugw("got multi-room part, deferring", "location", roomPart.Location)
			multiRoom = append(multiRoom, roomPart)
			continue
		}
		if !strings.Contains(roomPart.Location, ":") {
			log.Debugw("no room number", "location", roomPart.Location)
			roomPart.Location = "R1:" + roomPart.Location
		}
		roomNo, cabs, _ := strings.Cut(roomPart.Location, ":")
		cabNos := strings.Split(cabs, "&")
		if len(cabNos) == 1 {
			roomPart.Count = ExtractQuantity(roomPart.Location)
			cabParts = append(cabParts, roomPart)
			continue
		}
		for _, cab := range cabNos {
			part := roomPart.Copy()
			part.Location = roomNo + ":" + cab
			part.Count = ExtractQuantity(cab)
			cabParts = append(cabParts, part)
		}
	}
	if len(multiRoom) > 0 {
		var deferred []*PartRecord
		for _, part := range multiRoom {
			deferred = append(deferred, part.splitRooms()...)
		}
		resplit := p.splitRoomCabs(deferred)
		log.Debugw("re-split deferred multi-room parts",
			"rooms", len(deferred),
			"cabs", len(resplit),
		)
		cabParts = append(cabParts, resplit...)
	}
	return cabParts
}

// ToCSVLine renders the record back into a raw Mozaik CSV line, the inverse
// of row parsing. Width-scoped records (empty Width) use the five-column
// width-file layout.
func (p *PartRecord) ToCSVLine() string {
	fields := []string{strconv.Itoa(p.Count)}
	if p.Width != "" {
		fields = append(fields, p.Width)
	}
	fields = append(fields, p.Length, p.Type, p.Location, p.Note)
	return strings.Join(fields, ",")
}

func (p *PartRecord) String() string {
	return fmt.Sprintf(
		"PartRecord(count=%d, width=%q, length=%q, type=%q, no=%q, note=%q)",
		p.Count, p.Width, p.Length, p.Type, p.Location, p.Note,
	)
}
