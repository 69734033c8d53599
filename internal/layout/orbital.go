package layout

import (
	"fmt"
	"math"
	"sort"

	"causenet/atlas/internal/graph"
)

// OrbitCount is the number of concentric connectivity rings. Orbits 1-5 are
// quantile buckets of connected entities; orbit 6 holds the isolated ones.
const OrbitCount = 6

// Sector is the angular slice reserved for one category. Zero-member
// categories keep a degenerate zero-width sector so lookups never fail.
type Sector struct {
	Category string  `json:"category"`
	Start    float64 `json:"start"`
	End      float64 `json:"end"`
	Center   float64 `json:"center"`
}

// Corridor is a detected dense cross-category edge route ("hyper-route")
type Corridor struct {
	Categories    [2]string `json:"categories"`
	EdgeCount     int       `json:"edge_count"`
	BridgeNodeIDs []string  `json:"bridge_node_ids"`
	Label         string    `json:"label"`
	MidAngle      float64   `json:"mid_angle"`
}

// OrbitalResult is the full output of the orbital layout
type OrbitalResult struct {
	Positions map[string]Point `json:"positions"`
	Orbits    map[string]int   `json:"orbits"`
	Sectors   []Sector         `json:"sectors"`
	Corridors []Corridor       `json:"corridors"`
}

// OrbitalConfig holds the layout's geometric and detection parameters
type OrbitalConfig struct {
	BaseRadius       float64 // orbit 1 radius
	RingGap          float64 // radial distance between orbits
	JitterScale      float64 // jitter amplitude as a fraction of RingGap
	SectorPadding    float64 // fraction of sector width kept clear per side
	CorridorMinEdges int     // aggregate cross-category edges to qualify
	BridgeMinEdges   int     // per-entity edges toward the other category
	MaxCorridors     int     // corridors kept after sorting
}

// DefaultOrbitalConfig returns sensible defaults
func DefaultOrbitalConfig() OrbitalConfig {
	return OrbitalConfig{
		BaseRadius:       90,
		RingGap:          70,
		JitterScale:      0.18,
		SectorPadding:    0.05,
		CorridorMinEdges: 12,
		BridgeMinEdges:   4,
		MaxCorridors:     8,
	}
}

// BuildOrbital assigns every entity an orbit and an angular slot, then
// detects dense cross-category corridors over the visible edge set. The
// whole computation is deterministic: re-running on the same inputs yields
// identical positions, including the per-entity jitter.
func BuildOrbital(net *graph.Network, edges []graph.CausalEdge, cfg OrbitalConfig) *OrbitalResult {
	res := &OrbitalResult{
		Positions: make(map[string]Point, len(net.Entities)),
		Orbits:    assignOrbits(net),
	}
	res.Sectors = allocateSectors(net, cfg)

	sectorByName := make(map[string]Sector, len(res.Sectors))
	for _, s := range res.Sectors {
		sectorByName[s.Category] = s
	}
	placeEntities(net, res, sectorByName, cfg)
	res.Corridors = detectCorridors(net, edges, sectorByName, cfg)
	return res
}

// assignOrbits splits entities into connected vs isolated, sorts the
// connected group by connection count descending, and divides it into five
// equal-size buckets (the last may run short). Isolated entities go to
// orbit 6. Every entity lands in exactly one orbit.
func assignOrbits(net *graph.Network) map[string]int {
	orbits := make(map[string]int, len(net.Entities))

	var connected []string
	for _, id := range net.EntityIDs() {
		if net.Entities[id].ConnectionCount == 0 {
			orbits[id] = OrbitCount
		} else {
			connected = append(connected, id)
		}
	}
	sort.SliceStable(connected, func(i, j int) bool {
		a, b := net.Entities[connected[i]], net.Entities[connected[j]]
		if a.ConnectionCount != b.ConnectionCount {
			return a.ConnectionCount > b.ConnectionCount
		}
		return a.ID < b.ID
	})

	if len(connected) == 0 {
		return orbits
	}
	bucket := (len(connected) + 4) / 5
	for i, id := range connected {
		orbit := i/bucket + 1
		if orbit > 5 {
			orbit = 5
		}
		orbits[id] = orbit
	}
	return orbits
}

// allocateSectors walks categories in curated order and gives each an
// angular width proportional to its membership, with a small padding strip
// on each side. Empty categories collapse to a zero-width sector at the
// current cursor.
func allocateSectors(net *graph.Network, cfg OrbitalConfig) []Sector {
	counts := make(map[graph.Category]int)
	for _, e := range net.Entities {
		counts[e.Category]++
	}
	total := len(net.Entities)

	var sectors []Sector
	cursor := 0.0
	for _, cat := range graph.CuratedOrder() {
		count := counts[cat]
		if count == 0 || total == 0 {
			sectors = append(sectors, Sector{
				Category: cat.String(),
				Start:    cursor, End: cursor, Center: cursor,
			})
			continue
		}
		width := 360 * float64(count) / float64(total)
		pad := width * cfg.SectorPadding
		sectors = append(sectors, Sector{
			Category: cat.String(),
			Start:    cursor + pad,
			End:      cursor + width - pad,
			Center:   cursor + width/2,
		})
		cursor += width
	}
	return sectors
}

// placeEntities positions each (orbit, category) cell: the most connected
// entity sits at the sector center, the rest alternate symmetrically
// outward. Radius jitter is keyed to the entity's own id so the same hazard
// never shuffles across re-layouts.
func placeEntities(net *graph.Network, res *OrbitalResult, sectors map[string]Sector, cfg OrbitalConfig) {
	type cellKey struct {
		orbit    int
		category graph.Category
	}
	cells := make(map[cellKey][]string)
	for _, id := range net.EntityIDs() {
		e := net.Entities[id]
		cells[cellKey{res.Orbits[id], e.Category}] = append(cells[cellKey{res.Orbits[id], e.Category}], id)
	}

	for key, members := range cells {
		sort.SliceStable(members, func(i, j int) bool {
			a, b := net.Entities[members[i]], net.Entities[members[j]]
			if a.ConnectionCount != b.ConnectionCount {
				return a.ConnectionCount > b.ConnectionCount
			}
			return a.ID < b.ID
		})
		sector := sectors[key.category.String()]
		usable := sector.End - sector.Start
		step := usable / float64(len(members)+1)

		nominal := cfg.BaseRadius + float64(key.orbit-1)*cfg.RingGap
		jitterAmp := cfg.JitterScale * cfg.RingGap * float64(key.orbit) / OrbitCount

		for k, id := range members {
			angle := sector.Center + alternatingOffset(k)*step
			radius := nominal + hashUnit(id)*jitterAmp
			rad := angle * math.Pi / 180
			res.Positions[id] = Point{X: radius * math.Cos(rad), Y: radius * math.Sin(rad)}
		}
	}
}

// alternatingOffset yields 0, +1, -1, +2, -2, ... for k = 0, 1, 2, 3, 4, ...
func alternatingOffset(k int) float64 {
	if k == 0 {
		return 0
	}
	m := float64((k + 1) / 2)
	if k%2 == 1 {
		return m
	}
	return -m
}

// hashUnit maps an id to a stable value in [-1, 1) via an FNV-1a hash
func hashUnit(s string) float64 {
	var h uint32 = 2166136261
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= 16777619
	}
	return float64(int32(h)) / float64(math.MaxInt32)
}

// detectCorridors counts edges whose endpoints live in different categories
// under a canonical unordered pair key, keeps pairs over the aggregate
// threshold, and collects each pair's bridge entities (those individually
// over the per-node threshold). The result is sorted by edge count
// descending and capped.
func detectCorridors(net *graph.Network, edges []graph.CausalEdge, sectors map[string]Sector, cfg OrbitalConfig) []Corridor {
	type pairKey struct{ a, b graph.Category }
	canonical := func(x, y graph.Category) pairKey {
		if x.String() > y.String() {
			x, y = y, x
		}
		return pairKey{x, y}
	}

	pairCounts := make(map[pairKey]int)
	nodeCounts := make(map[pairKey]map[string]int)
	for _, e := range edges {
		src, okS := net.Entities[e.Source]
		dst, okT := net.Entities[e.Target]
		if !okS || !okT || src.Category == dst.Category {
			continue
		}
		key := canonical(src.Category, dst.Category)
		pairCounts[key]++
		if nodeCounts[key] == nil {
			nodeCounts[key] = make(map[string]int)
		}
		nodeCounts[key][e.Source]++
		nodeCounts[key][e.Target]++
	}

	var corridors []Corridor
	for key, count := range pairCounts {
		if count < cfg.CorridorMinEdges {
			continue
		}
		var bridges []string
		for id, n := range nodeCounts[key] {
			if n >= cfg.BridgeMinEdges {
				bridges = append(bridges, id)
			}
		}
		sort.Slice(bridges, func(i, j int) bool {
			ni, nj := nodeCounts[key][bridges[i]], nodeCounts[key][bridges[j]]
			if ni != nj {
				return ni > nj
			}
			return bridges[i] < bridges[j]
		})

		nameA, nameB := key.a.String(), key.b.String()
		corridors = append(corridors, Corridor{
			Categories:    [2]string{nameA, nameB},
			EdgeCount:     count,
			BridgeNodeIDs: bridges,
			Label:         fmt.Sprintf("%s <-> %s", nameA, nameB),
			MidAngle:      circularMid(sectors[nameA].Center, sectors[nameB].Center),
		})
	}

	sort.SliceStable(corridors, func(i, j int) bool {
		if corridors[i].EdgeCount != corridors[j].EdgeCount {
			return corridors[i].EdgeCount > corridors[j].EdgeCount
		}
		return corridors[i].Label < corridors[j].Label
	})
	if len(corridors) > cfg.MaxCorridors {
		corridors = corridors[:cfg.MaxCorridors]
	}
	return corridors
}

// circularMid returns the midpoint of two angles along the shorter arc,
// normalized to [0, 360)
func circularMid(a, b float64) float64 {
	diff := math.Mod(b-a+540, 360) - 180
	return math.Mod(a+diff/2+360, 360)
}
