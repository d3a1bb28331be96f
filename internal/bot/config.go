package bot

import "strings"

const (
	DefaultPrefix  = "!"
	DefaultTrigger = "yp"
)

// Options — то, на что бот реагирует в чате.
type Options struct {
	Prefix  string // "!"
	Trigger string // "yp", сравнивается без учёта регистра
}

func DefaultOptions() Options {
	return Options{Prefix: DefaultPrefix, Trigger: DefaultTrigger}
}

func (o Options) withDefaults() Options {
	if o.Prefix == "" {
		o.Prefix = DefaultPrefix
	}
	o.Trigger = strings.ToLower(strings.TrimSpace(o.Trigger))
	if o.Trigger == "" {
		o.Trigger = DefaultTrigger
	}
	return o
}

// command — полная команда как её набирают в чате, например "!yp".
func (o Options) command() string {
	return o.Prefix + o.Trigger
}
