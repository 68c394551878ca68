package models

import (
	"errors"
	"fmt"
	"sort"
)

var ErrUnknownTopic = errors.New("unknown target topic")

const DefaultTopic = "民营经济发展"

// TargetKeywordSet is a named, read-only description of a target topic.
type TargetKeywordSet struct {
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
}

// Key phrases, injected emphasis words and floor terms are one table shared by every
// topic.
var (
	keyPhrases    = []string{"民营经济", "民营企业", "经济发展", "高质量发展"}
	emphasisWords = []string{"创新", "发展", "市场", "改革", "政策", "支持"}
)

const (
	FloorPrimary   = "民营经济"
	FloorSecondary = "发展"
)

// KeyPhrases are multi-character phrases matched as a whole; they score double.
func KeyPhrases() []string {
	return append([]string(nil), keyPhrases...)
}

// InjectedPhrases is what the keyword extractor must never lose: the key phrases
// followed by the emphasis words.
func InjectedPhrases() []string {
	out := make([]string, 0, len(keyPhrases)+len(emphasisWords))
	out = append(out, keyPhrases...)
	return append(out, emphasisWords...)
}

var targetTopics = map[string]TargetKeywordSet{
	"民营经济发展": {
		Name:     "民营经济发展",
		Keywords: []string{"民营", "经济", "发展", "企业", "创新", "支持", "政策", "扶持", "改革", "市场"},
	},
	"科技创新": {
		Name:     "科技创新",
		Keywords: []string{"科技", "创新", "研发", "技术", "人才", "突破", "数字", "智能", "现代化", "核心"},
	},
	"乡村振兴": {
		Name:     "乡村振兴",
		Keywords: []string{"乡村", "振兴", "农业", "农村", "农民", "现代化", "产业", "生态", "文化", "组织"},
	},
}

// LookupTopic returns a copy of the named set. Unknown names yield the default set
// together with ErrUnknownTopic so callers can still answer.
func LookupTopic(name string) (TargetKeywordSet, error) {
	if set, ok := targetTopics[name]; ok {
		return cloneSet(set), nil
	}
	return cloneSet(targetTopics[DefaultTopic]), fmt.Errorf("%w: %s", ErrUnknownTopic, name)
}

func TopicNames() []string {
	names := make([]string, 0, len(targetTopics))
	for name := range targetTopics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func cloneSet(s TargetKeywordSet) TargetKeywordSet {
	s.Keywords = append([]string(nil), s.Keywords...)
	return s
}
