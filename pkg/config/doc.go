/*
Package config manages configuration parsing and validation for retrofit.

	            +-------------+
	            |   Config    |
	            | (Profile)   |
	            +------+------+
	                   |
	     +-------------+-------------+
	     |             |             |
	+----+----+   +----+----+   +----+----+
	|  YAML   |   |   HCL   |   |  JSON   |
	| loader  |   | loader  |   | loader  |
	+---------+   +---------+   +---------+

🎯 Purpose:
- Describes a complete rewrite profile: source, destination, rules
- Validates configuration values and fills in defaults
- Supports YAML, HCL and JSON config files
- Ships a built-in profile so the tool works with zero setup

🔄 Flow:
1. Probes for a .retrofit config file (or uses --config)
2. Parses format-specific syntax
3. Validates values and applies defaults
4. Hands the validated profile to the operation layer

📝 Design Philosophy:
The config package is the source of truth for a run. Everything the
operation layer does — which files are candidates, which rules fire,
where output lands — is derived from the Config it receives. Unknown
keys are rejected in every format so typos fail loudly instead of
silently disabling a rule.

🔍 Example:

	cfg, err := config.LoadOrDefault(ctx, "")
	if err != nil {
		return err
	}
	fmt.Println(cfg.String()) // "updates/upstream/... -> json-java21/... (.java)"
*/
package config
