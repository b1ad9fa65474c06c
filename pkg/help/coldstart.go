package help

const ColdstartYAML = `# corpus-prep Quick Start

pipeline:
  - "RAW -> SPLIT -> AUGMENTED (train only) -> LANGUAGE-GATED -> NORMALIZED -> PRUNED -> LABEL-ENCODED -> EXPORTED"
  - "Train and test are pruned against their own frequency tables"
  - "Labels are remapped -1 -> 0, 0 -> 1, 1 -> 2"

input:
  columns: "title, content, source, classes (other columns ignored)"
  missing_label: "row dropped before splitting, counted in the summary"
  missing_field: "fatal unless --skip-malformed"

commands:
  basic_prepare: |
    corpus-prep prepare --input news.csv --vocab glove.6B.100d.txt

  reproducible: |
    corpus-prep prepare --input news.csv --vocab glove.6B.100d.txt --seed 1234

  with_config: |
    corpus-prep prepare --config pipeline.yaml --input news.csv --vocab glove.6B.100d.txt --min-count 3

  augmented_train: |
    corpus-prep prepare --input news.csv --vocab glove.6B.100d.txt --augment-copies 3

  cached_vocabulary: |
    corpus-prep prepare --input news.csv --vocab glove.840B.300d.txt --vocab-cache-dir .cache --cache-ttl 168h

  with_ledger: |
    corpus-prep prepare --input news.csv --vocab glove.6B.100d.txt --ledger
    corpus-prep runs list
    corpus-prep runs show

  single_text: |
    corpus-prep normalize --vocab glove.6B.100d.txt --language en --text "Stocks <b>rose</b>. Investors mood improved."

config_file:
  train_fraction: 0.8
  classes: [-1, 0, 1]
  supported_languages: [en]
  candidate_languages: []
  min_count: 5
  min_tokens: 8
  max_sentences: 5
  seed: 0
  augment_copies: 1
  skip_malformed: false

normalization:
  - "excerpt: title + first max_sentences sentences, no separator"
  - "sanitize: drop non-printable, strip <...> tags, symbols to spaces"
  - "lowercase, stop words (en, es), Porter stemming"
  - "vocabulary restriction: drop unknown words, dash fillers, the source name"

runs_commands:
  list: "List runs with counts and seeds"
  show: "Show stages and rejections for a run (default latest)"

error_behavior:
  - "Unsupported or undetected language: document blanked, logged, removed at cleanup"
  - "Fewer than min_tokens tokens after pruning: document removed"
  - "Bad config, unreadable vocabulary, malformed rows: run aborts, no output written"
  - "Outputs are written to temp files and renamed only when both are complete"
`
