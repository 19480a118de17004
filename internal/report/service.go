package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/signintech/gopdf"
	"go.uber.org/zap"

	"metabotwin/internal/intake"
)

type Service struct {
	logger *zap.Logger
}

func NewService(logger *zap.Logger) *Service {
	return &Service{logger: logger}
}

// Generate renders the assessment snapshot as a PDF and returns the
// bytes for download.
func (s *Service) Generate(session intake.Session, result intake.SimulationResult) ([]byte, error) {
	s.logger.Debug("generating PDF report", zap.String("session_id", session.ID.String()))

	pdf := gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})
	pdf.AddPage()

	// Try multiple common font paths for Alpine/Debian images
	fontPaths := []string{
		"/usr/share/fonts/ttf-dejavu/DejaVuSans.ttf",
		"/usr/share/fonts/dejavu/DejaVuSans.ttf",
		"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	}

	var fontErr error
	fontLoaded := false
	for _, path := range fontPaths {
		if err := pdf.AddTTFFont("DejaVu", path); err == nil {
			fontLoaded = true
			break
		} else {
			fontErr = err
		}
	}
	if !fontLoaded {
		return nil, fmt.Errorf("failed to load font for PDF, please ensure ttf-dejavu is installed: %w", fontErr)
	}

	if err := pdf.SetFont("DejaVu", "", 20); err != nil {
		return nil, err
	}

	// Header
	pdf.Cell(nil, "MetaboTwin Risk Report")
	pdf.Br(30)

	// Patient info
	p := session.Profile
	if err := pdf.SetFont("DejaVu", "", 12); err != nil {
		return nil, err
	}
	pdf.Cell(nil, fmt.Sprintf("Date: %s", time.Now().Format("02.01.2006 15:04")))
	pdf.Br(15)
	pdf.Cell(nil, fmt.Sprintf("Patient: %s (ID: %s)", p.Name, p.PatientID))
	pdf.Br(15)
	pdf.Cell(nil, fmt.Sprintf("Gender: %s | Age: %d", p.Gender, p.Age))
	pdf.Br(25)

	// Vitals
	if err := pdf.SetFont("DejaVu", "", 14); err != nil {
		return nil, err
	}
	pdf.Cell(nil, "Simulated Vitals:")
	pdf.Br(15)

	if err := pdf.SetFont("DejaVu", "", 11); err != nil {
		return nil, err
	}
	adj := result.Adjustments
	pdf.Cell(nil, fmt.Sprintf("- Fasting Glucose: %.0f mg/dL", adj.Glucose))
	pdf.Br(12)
	pdf.Cell(nil, fmt.Sprintf("- BMI: %.1f", adj.BMI))
	pdf.Br(12)
	pdf.Cell(nil, fmt.Sprintf("- Diastolic BP: %.0f", adj.DiastolicBP))
	pdf.Br(12)
	pdf.Cell(nil, fmt.Sprintf("- Genetic Risk Scalar: %.2f | Lifestyle Adjustment: %+.0f%%",
		result.Assessment.Pedigree, result.Assessment.Lifestyle*100))
	pdf.Br(25)

	// Results
	if err := pdf.SetFont("DejaVu", "", 14); err != nil {
		return nil, err
	}
	pdf.Cell(nil, "Assessment:")
	pdf.Br(15)

	if err := pdf.SetFont("DejaVu", "", 11); err != nil {
		return nil, err
	}
	pdf.Cell(nil, fmt.Sprintf("- Biological Risk: %.1f%%", result.Assessment.Biological*100))
	pdf.Br(12)
	pdf.Cell(nil, fmt.Sprintf("- Total Risk Score: %.1f%%", result.Assessment.Final*100))
	pdf.Br(12)
	pdf.Cell(nil, fmt.Sprintf("- Status: %s", result.Assessment.Status))
	pdf.Br(20)

	// Advisories
	for _, alert := range result.Alerts {
		lines, _ := pdf.SplitText("! "+alert, 500)
		for _, l := range lines {
			pdf.Cell(nil, l)
			pdf.Br(12)
		}
	}

	// Footer
	pdf.SetY(800)
	if err := pdf.SetFont("DejaVu", "", 9); err != nil {
		return nil, err
	}
	pdf.Cell(nil, "Generated by MetaboTwin. Not a clinical diagnosis.")

	var buf bytes.Buffer
	if _, err := pdf.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write PDF: %w", err)
	}
	return buf.Bytes(), nil
}
