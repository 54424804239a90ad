package rank

import "jobhunt-workbench/internal/domain"

type Scorer interface {
	Score(job domain.JobLead) (score int, tags []string)
}
