package rooms

import (
	"sort"
	"strings"

	"github.com/diwise/home-activity-sync/internal/pkg/infrastructure/hue"
)

// DefaultSuffixWords are stripped from a device name before it is matched against room names.
var DefaultSuffixWords = []string{
	"sensor", "motion", "temperature", "light level", "lightlevel", "switch",
	"dimmer", "contact", "door", "window", "button", "presence",
}

// Strategy maps a device to a room name, or reports that it can not.
type Strategy interface {
	Resolve(d hue.Identity) (string, bool)
}

type StrategyFunc func(d hue.Identity) (string, bool)

func (f StrategyFunc) Resolve(d hue.Identity) (string, bool) {
	return f(d)
}

// Resolver applies its strategies in order and returns the first match.
type Resolver struct {
	strategies []Strategy
}

func New(strategies ...Strategy) *Resolver {
	return &Resolver{strategies: strategies}
}

// NewResolver builds the default chain for one tenant snapshot: the resource room
// graph, legacy room groups, shared accessory prefix and finally fuzzy name matching.
func NewResolver(snapshot *hue.Snapshot, devices []hue.Device, suffixWords []string) *Resolver {
	if len(suffixWords) == 0 {
		suffixWords = DefaultSuffixWords
	}

	graph := ResourceGraph(snapshot.Rooms)
	groups := LegacyGroups(snapshot.Groups)

	return New(
		graph,
		groups,
		AccessoryPrefix(devices, graph, groups),
		FuzzyName(roomNames(snapshot), suffixWords),
	)
}

func (r *Resolver) Resolve(d hue.Device) (string, bool) {
	id := d.ID()
	for _, s := range r.strategies {
		if room, ok := s.Resolve(id); ok {
			return room, true
		}
	}
	return "", false
}

// Room is Resolve as a nullable room name.
func (r *Resolver) Room(d hue.Device) *string {
	if room, ok := r.Resolve(d); ok {
		return &room
	}
	return nil
}

// ResourceGraph resolves devices whose owning device resource is a child of a room.
func ResourceGraph(rooms []hue.RoomResource) Strategy {
	byDevice := map[string]string{}
	for _, room := range rooms {
		for _, child := range room.Children {
			if child.RType == "device" {
				byDevice[child.RID] = room.Metadata.Name
			}
		}
	}

	return StrategyFunc(func(d hue.Identity) (string, bool) {
		if d.OwnerID == "" {
			return "", false
		}
		room, ok := byDevice[d.OwnerID]
		return room, ok
	})
}

// LegacyGroups resolves devices listed as members of a legacy group of type Room.
func LegacyGroups(groups map[string]hue.LegacyGroup) Strategy {
	members := map[string]string{}

	ids := make([]string, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		g := groups[id]
		if g.Type != hue.LegacyGroupTypeRoom {
			continue
		}
		for _, l := range g.Lights {
			members[memberKey(hue.SourceLights, l)] = g.Name
		}
		for _, s := range g.Sensors {
			members[memberKey(hue.SourceSensors, s)] = g.Name
		}
	}

	return StrategyFunc(func(d hue.Identity) (string, bool) {
		if d.LegacyID == "" {
			return "", false
		}
		room, ok := members[memberKey(d.Source, d.LegacyID)]
		return room, ok
	})
}

func memberKey(source, legacyID string) string {
	if source == hue.SourceContacts {
		source = hue.SourceSensors
	}
	return source + "/" + legacyID
}

// AccessoryPrefix lets a device inherit the room of another capability of the same
// physical accessory. Lights seed the index first, then sensors that the direct
// strategies could place.
func AccessoryPrefix(devices []hue.Device, direct ...Strategy) Strategy {
	byPrefix := map[string]string{}

	resolveDirect := func(d hue.Identity) (string, bool) {
		for _, s := range direct {
			if room, ok := s.Resolve(d); ok {
				return room, true
			}
		}
		return "", false
	}

	index := func(lights bool) {
		for _, device := range devices {
			id := device.ID()
			if (id.Source == hue.SourceLights) != lights {
				continue
			}
			prefix := id.AccessoryPrefix()
			if prefix == "" {
				continue
			}
			if _, seen := byPrefix[prefix]; seen {
				continue
			}
			if room, ok := resolveDirect(id); ok {
				byPrefix[prefix] = room
			}
		}
	}

	index(true)
	index(false)

	return StrategyFunc(func(d hue.Identity) (string, bool) {
		prefix := d.AccessoryPrefix()
		if prefix == "" {
			return "", false
		}
		room, ok := byPrefix[prefix]
		return room, ok
	})
}

// FuzzyName strips known type words from the device name and matches what is left
// against room names on whole words. An exact match wins, then the longest room
// named inside the device name, then the shortest room that contains the name.
func FuzzyName(rooms []string, suffixWords []string) Strategy {
	return StrategyFunc(func(d hue.Identity) (string, bool) {
		name := stripSuffixWords(d.Name, suffixWords)
		if name == "" {
			return "", false
		}

		contained, containing := "", ""

		for _, room := range rooms {
			r := normalize(room)
			if r == "" {
				continue
			}

			switch {
			case r == name:
				return room, true
			case containsWords(name, r):
				if len(r) > len(normalize(contained)) {
					contained = room
				}
			case containsWords(r, name):
				if containing == "" || len(r) < len(normalize(containing)) {
					containing = room
				}
			}
		}

		if contained != "" {
			return contained, true
		}

		return containing, containing != ""
	})
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// containsWords reports whether the words of sub appear in s as a contiguous run.
func containsWords(s, sub string) bool {
	return strings.Contains(" "+s+" ", " "+sub+" ")
}

func stripSuffixWords(name string, suffixWords []string) string {
	name = " " + strings.ToLower(name) + " "

	words := append([]string{}, suffixWords...)
	sort.Slice(words, func(i, j int) bool { return len(words[i]) > len(words[j]) })

	for _, w := range words {
		word := " " + strings.ToLower(w) + " "
		for strings.Contains(name, word) {
			name = strings.ReplaceAll(name, word, " ")
		}
	}

	return strings.Join(strings.Fields(name), " ")
}

func roomNames(snapshot *hue.Snapshot) []string {
	seen := map[string]bool{}
	names := []string{}

	add := func(n string) {
		if n != "" && !seen[n] {
			seen[n] = true
			names = append(names, n)
		}
	}

	for _, r := range snapshot.Rooms {
		add(r.Metadata.Name)
	}
	for _, g := range snapshot.Groups {
		if g.Type == hue.LegacyGroupTypeRoom {
			add(g.Name)
		}
	}

	sort.Strings(names)
	return names
}
