package batch

import (
	"fmt"
	"path/filepath"

	"github.com/eerla/pybenders-sub000/internal/catalog"
	"github.com/eerla/pybenders-sub000/internal/manifest"
	"github.com/eerla/pybenders-sub000/internal/services"
	"github.com/eerla/pybenders-sub000/internal/textutil"
	"github.com/eerla/pybenders-sub000/internal/timeline"
)

// job carries everything one render needs, resolved up front so workers
// share no mutable state.
type job struct {
	subject    string
	questionID string
	profile    string
	scenes     []timeline.Scene
	tl         timeline.Timeline
	workDir    string
	outputPath string
	logPath    string
}

// buildPlan validates every question against the profile catalog before
// any encode starts and resolves the per-job paths. Any defect here is a
// build-time problem with the manifest, so the whole batch aborts.
func (s *Scheduler) buildPlan(doc *manifest.Document, runID string) ([]*job, error) {
	cat, err := catalog.Load()
	if err != nil {
		return nil, err
	}
	if !cat.IsKnownSubject(doc.Subject) {
		return nil, services.Wrap(services.ErrConfiguration, "batch", "plan",
			fmt.Sprintf("unknown subject %q", doc.Subject), nil)
	}

	subjectToken := textutil.SanitizeToken(doc.Subject)
	reelsDir := filepath.Join(s.cfg.Paths.OutputDir, subjectToken, "reels")
	jobsLogDir := filepath.Join(s.cfg.Paths.LogDir, "jobs", runID)

	plan := make([]*job, 0, len(doc.Questions))
	for _, q := range doc.Questions {
		profile, ok := cat.Profile(q.ContentProfile)
		if !ok {
			return nil, services.Wrap(services.ErrConfiguration, "batch", "plan",
				fmt.Sprintf("question %s: unknown content profile %q", q.QuestionID, q.ContentProfile), nil)
		}

		inputs := make([]catalog.SceneInput, 0, len(q.Scenes))
		for _, scene := range q.Scenes {
			inputs = append(inputs, catalog.SceneInput{
				Role:      scene.Role,
				ImagePath: scene.ImagePath,
				Duration:  scene.DurationSeconds,
			})
		}
		scenes, err := catalog.ExpandScenes(profile, inputs)
		if err != nil {
			return nil, services.Wrap(nil, "batch", "plan", "question "+q.QuestionID, err)
		}
		tl, err := timeline.Build(scenes)
		if err != nil {
			return nil, services.Wrap(nil, "batch", "plan", "question "+q.QuestionID, err)
		}

		token := textutil.SanitizeToken(q.QuestionID)
		plan = append(plan, &job{
			subject:    doc.Subject,
			questionID: q.QuestionID,
			profile:    q.ContentProfile,
			scenes:     scenes,
			tl:         tl,
			workDir:    filepath.Join(s.cfg.Paths.StagingDir, runID, token),
			outputPath: filepath.Join(reelsDir, token+".mp4"),
			logPath:    filepath.Join(jobsLogDir, token+".log"),
		})
	}
	return plan, nil
}
