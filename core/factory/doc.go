// Package factory builds pluggable modules, such as journal stores and metrics
// sinks, from configuration. A module is a type name plus a raw settings map;
// each registered factory decodes the map into its own typed config.
//
//	reg := factory.NewRegistry[journal.Store]()
//	reg.MustRegister("jsonl", func(conf map[string]any) (journal.Store, error) {
//	    var c struct{ Path string `json:"path"` }
//	    if err := factory.Decode(conf, &c); err != nil {
//	        return nil, err
//	    }
//	    return journal.NewJSONLStore(c.Path)
//	})
//	st, err := reg.Create(factory.ModuleConfig{Type: "jsonl", Conf: map[string]any{"path": "journal.jsonl"}})
package factory
