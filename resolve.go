package msgbody

import (
	"sort"
)

// piece is a candidate segment of the raw text with a constant set of
// active annotations.
type piece struct {
	spn     span
	styles  StyleSet
	mention *annotation
	link    *annotation
	spoiler *SpoilerID
}

func (p piece) mergeableWith(q piece) bool {
	if p.mention != nil || q.mention != nil {
		return false
	}
	return p.styles == q.styles && p.link == q.link && p.spoiler == q.spoiler
}

// resolve partitions the text into maximal pieces such that no range starts
// or ends strictly inside a piece, and computes the active styles for every
// piece.
//
// Styles of different ranges compose. A None range cancels a style within
// a piece if it is more specific than every range granting this style there.
// Pieces within a spoiler region always belong to it, even if the Spoiler
// style is cancelled, so the gate hides the region as a whole.
func resolve(norm normalized, links []annotation, regions []SpoilerID) []piece {
	if norm.n == 0 {
		return nil
	}
	var all []*annotation
	for i := range links {
		all = append(all, &links[i])
	}
	for i := range norm.styles {
		all = append(all, &norm.styles[i])
	}
	for i := range norm.mentions {
		all = append(all, &norm.mentions[i])
	}
	cuts := cutPoints(all, norm.n)
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].spn.l < all[j].spn.l
	})
	tracer().Debugf("msgbody: resolving %d ranges at %d cut points", len(all), len(cuts))
	//
	var queues [styleCount]coverQueue
	var linkQ, mentionQ coverQueue
	pieces := make([]piece, 0, len(cuts))
	k := 0 // next range to enter the sweep
	for c := 0; c+1 < len(cuts); c++ {
		pos, next := cuts[c], cuts[c+1]
		for ; k < len(all) && all[k].spn.l <= pos; k++ {
			switch a := all[k]; a.kind {
			case styleKind:
				queues[a.style].add(a)
			case linkKind:
				linkQ.add(a)
			case mentionKind:
				mentionQ.add(a)
			}
		}
		p := piece{spn: span{pos, next}}
		suppressor := queues[None].top(pos)
		for s := Bold; s < styleCount; s++ {
			grant := queues[s].top(pos)
			if grant == nil {
				continue
			}
			if suppressor != nil && !moreSpecific(grant, suppressor) {
				continue
			}
			p.styles = p.styles.Add(s)
		}
		p.link = linkQ.top(pos)
		p.mention = mentionQ.top(pos)
		// a None range may cancel the Spoiler style, but not region membership
		p.spoiler = regionAt(regions, pos)
		if n := len(pieces); n > 0 && pieces[n-1].spn.r == pos && pieces[n-1].mergeableWith(p) {
			pieces[n-1].spn.r = next
			continue
		}
		pieces = append(pieces, p)
	}
	return pieces
}

// cutPoints collects the sorted set of distinct range boundaries, including 0 and n.
func cutPoints(all []*annotation, n int) []int {
	cuts := make([]int, 0, 2*len(all)+2)
	cuts = append(cuts, 0, n)
	for _, a := range all {
		cuts = append(cuts, a.spn.l, a.spn.r)
	}
	sort.Ints(cuts)
	j := 0
	for i := 1; i < len(cuts); i++ {
		if cuts[i] != cuts[j] {
			j++
			cuts[j] = cuts[i]
		}
	}
	return cuts[:j+1]
}

// spoilerRegions coalesces overlapping spoiler ranges into regions. A spoiler
// range which does not overlap another spoiler range is a region of its own.
func spoilerRegions(styles []annotation) []SpoilerID {
	var spoilers []span
	for _, a := range styles {
		if a.style == Spoiler {
			spoilers = append(spoilers, a.spn)
		}
	}
	sort.Slice(spoilers, func(i, j int) bool {
		return spoilers[i].l < spoilers[j].l || (spoilers[i].l == spoilers[j].l && spoilers[i].r > spoilers[j].r)
	})
	var regions []SpoilerID
	var cur span
	for i, spn := range spoilers {
		if i > 0 && spn.l < cur.r {
			if spn.r > cur.r {
				cur.r = spn.r
			}
			continue
		}
		if i > 0 {
			regions = append(regions, SpoilerID{cur.l, cur.len()})
		}
		cur = spn
	}
	if len(spoilers) > 0 {
		regions = append(regions, SpoilerID{cur.l, cur.len()})
	}
	return regions
}

// regionAt returns the spoiler region containing pos, or nil.
func regionAt(regions []SpoilerID, pos int) *SpoilerID {
	i := sort.Search(len(regions), func(i int) bool {
		return regions[i].Start+regions[i].Length > pos
	})
	if i < len(regions) && regions[i].Start <= pos {
		return &regions[i]
	}
	return nil
}
