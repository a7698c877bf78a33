package stateful

import "sort"

// MaxPopularTags caps the tag list served by PopularTags.
const MaxPopularTags = 15

// PopularTags returns tags ordered by how many current articles use them
// (most used first, ties by name), followed by the remaining static tags
// in their configured order. The result holds at most MaxPopularTags tags.
func (s *Store) PopularTags() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int)
	for _, a := range s.articles {
		seen := make(map[string]bool, len(a.TagList))
		for _, t := range a.TagList {
			if t == "" || seen[t] {
				continue
			}
			seen[t] = true
			counts[t]++
		}
	}

	used := make([]string, 0, len(counts))
	for t := range counts {
		used = append(used, t)
	}
	sort.Slice(used, func(i, j int) bool {
		if counts[used[i]] != counts[used[j]] {
			return counts[used[i]] > counts[used[j]]
		}
		return used[i] < used[j]
	})

	tags := used
	for _, t := range s.tags {
		if _, ok := counts[t]; !ok {
			counts[t] = 0
			tags = append(tags, t)
		}
	}
	if len(tags) > MaxPopularTags {
		tags = tags[:MaxPopularTags]
	}
	return tags
}
