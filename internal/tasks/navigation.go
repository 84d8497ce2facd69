package tasks

import (
	"git.home.luguber.info/inful/taxogen/internal/hierarchy"
	"git.home.luguber.info/inful/taxogen/internal/taxonomy"
)

// navData is the public view of a taxonomy in one language: only
// classifications with at least one visible post take part in navigation.
type navData struct {
	names []string
	index map[string]int
	// tree is the clipped hierarchy, nil for flat taxonomies.
	tree *hierarchy.Tree
}

func (g *Generator) buildNavigation(def taxonomy.Definition, lang string) {
	name := def.Name()
	d := &navData{index: make(map[string]int)}
	hasPosts := func(cls string) bool {
		return len(g.visible(g.res.Posts(name, lang, cls), lang)) >= 1
	}
	if full := g.res.Tree(name, lang); def.Flags().HasHierarchy && full != nil {
		d.tree = full.Clone(func(n *hierarchy.Node) bool { return hasPosts(n.ClassificationName) })
		for _, id := range d.tree.Flat() {
			d.names = append(d.names, d.tree.Node(id).ClassificationName)
		}
	} else {
		for _, cls := range g.res.Classifications(name, lang) {
			if hasPosts(cls) {
				d.names = append(d.names, cls)
			}
		}
	}
	for i, cls := range d.names {
		d.index[cls] = i
	}
	g.nav[navKey{name, lang}] = d
}

// neighbours are the classifications adjacent to one classification.
type neighbours struct {
	previous, next                   *string
	previousSibling, nextSibling     *string
	previousSameLevel, nextSameLevel *string
	parent                           *string
}

func (d *navData) neighbours(cls string, hierarchical bool) neighbours {
	var n neighbours
	at := func(names []string, i int) *string {
		if i < 0 || i >= len(names) {
			return nil
		}
		return &names[i]
	}
	if i, ok := d.index[cls]; ok {
		n.previous = at(d.names, i-1)
		n.next = at(d.names, i+1)
	}
	if !hierarchical {
		n.previousSibling, n.nextSibling = n.previous, n.next
		n.previousSameLevel, n.nextSameLevel = n.previous, n.next
		return n
	}
	if d.tree == nil {
		return n
	}
	id, ok := d.tree.Lookup(cls)
	if !ok {
		return n
	}
	if p := d.tree.Parent(id); p != hierarchy.NoParent {
		n.parent = &d.tree.Node(p).ClassificationName
	}
	siblings := d.tree.Siblings(id)
	for i, s := range siblings {
		if s != id {
			continue
		}
		if i > 0 {
			n.previousSibling = &d.tree.Node(siblings[i-1]).ClassificationName
		}
		if i+1 < len(siblings) {
			n.nextSibling = &d.tree.Node(siblings[i+1]).ClassificationName
		}
	}

	flat := d.tree.Flat()
	pos, _ := d.tree.FlatIndex(cls)
	depth := d.tree.Node(id).Depth()
	for i := pos - 1; i >= 0; i-- {
		if d.tree.Node(flat[i]).Depth() == depth {
			n.previousSameLevel = &d.tree.Node(flat[i]).ClassificationName
			break
		}
	}
	for i := pos + 1; i < len(flat); i++ {
		if d.tree.Node(flat[i]).Depth() == depth {
			n.nextSameLevel = &d.tree.Node(flat[i]).ClassificationName
			break
		}
	}
	return n
}

// navigationLinks renders the neighbours of a classification as context
// values: the classification itself, its friendly name and the links that
// exist for it.
func (g *Generator) navigationLinks(def taxonomy.Definition, cls, lang string, generateList, generateRSS bool) (taxonomy.Values, error) {
	d := g.nav[navKey{def.Name(), lang}]
	if d == nil {
		return taxonomy.Values{}, nil
	}
	n := d.neighbours(cls, def.Flags().HasHierarchy)
	name := def.Name()
	out := taxonomy.Values{}
	add := func(key string, target *string) error {
		if target == nil {
			out[key] = nil
			return nil
		}
		c := *target
		out[key] = c
		out[key+"_name"] = def.FriendlyName(c, lang, false)
		if generateList {
			l, err := g.links.Link(name, c, lang)
			if err != nil {
				return err
			}
			out[key+"_link"] = l
			if g.cfg.GenerateAtom && def.Flags().ShowAsIndex {
				if out[key+"_atom"], err = g.links.Link(name+"_atom", c, lang); err != nil {
					return err
				}
			}
		}
		if generateRSS && g.cfg.GenerateRSS && !def.Flags().AlwaysDisableRSS {
			l, err := g.links.Link(name+"_rss", c, lang)
			if err != nil {
				return err
			}
			out[key+"_rss"] = l
		}
		return nil
	}
	for _, item := range []struct {
		key    string
		target *string
	}{
		{"previous_" + name, n.previous},
		{"next_" + name, n.next},
		{"previous_" + name + "_sibling", n.previousSibling},
		{"next_" + name + "_sibling", n.nextSibling},
		{"previous_" + name + "_samelevel", n.previousSameLevel},
		{"next_" + name + "_samelevel", n.nextSameLevel},
		{"parent_" + name, n.parent},
	} {
		if err := add(item.key, item.target); err != nil {
			return nil, err
		}
	}
	return out, nil
}
