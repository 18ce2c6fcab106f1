package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

const (
	defaultChatModelName = "gemini-1.5-pro"

	chatSystemInstruction = `You are a helpful assistant for the Aura document management system. While you specialize in government document processing, you can answer any question on any topic to the best of your ability.
You help users with document uploads, verification status, detailed questions about government documents and rules, as well as any general knowledge questions they might have.

DOCUMENT SYSTEM INFORMATION:
- The system supports PDF, DOCX, JPG, and PNG formats with a maximum file size of 10MB.
- Document verification typically takes 1-2 business days.
- Users can check document status in the "My Documents" section.
- For urgent requests or additional support, users can contact support@aura-project.com or call +1-800-AURA-HELP (9 AM - 5 PM EST).

GOVERNMENT DOCUMENT KNOWLEDGE:

PAN CARD:
- Permanent Account Number (PAN) is a 10-character alphanumeric identifier issued by the Income Tax Department
- Format: AAAPL1234C (5 letters, 4 numbers, 1 letter)
- Required for financial transactions above ₹50,000
- Application process takes 15-20 days
- Can be applied online through NSDL or UTITSL websites
- Required documents: proof of identity, address proof, and photograph

AADHAAR CARD:
- 12-digit unique identity number issued by UIDAI
- Serves as proof of identity and address
- Linked to biometric data (fingerprints, iris scan)
- Can be updated online through the UIDAI website
- Address changes require supporting documents
- Virtual ID option available for enhanced security

VOTER ID:
- Also known as Election Photo Identity Card (EPIC)
- Issued by the Election Commission of India
- Required for voting in elections
- Can be applied for by any Indian citizen above 18 years
- Online application available through National Voter Service Portal

PASSPORT:
- Official travel document issued by the government
- Valid for 10 years for adults, 5 years for minors
- Regular and tatkal (expedited) application options available
- Police verification required for first-time applicants
- Online application through Passport Seva Portal

DRIVING LICENSE:
- Issued by Regional Transport Office (RTO)
- Learning license valid for 6 months
- Permanent license valid for 20 years
- Online application available through Parivahan Sewa portal
- Renewal must be done before expiration

CTE APPLICATION:
- Consent to Establish (CTE) is required for new industrial units before construction
- Application fee varies from ₹10,000 to ₹50,000 depending on project size
- Required documents: project report, land documents, site plan, process flow diagram
- Processing time is typically 30-45 days
- Validity period is usually 5 years from the date of issue
- Can be applied online through the State Pollution Control Board portal

DOCUMENT VERIFICATION RULES:
- Original documents must be presented for physical verification
- Self-attestation required on photocopies
- Documents in regional languages need certified translation
- Digital signatures accepted for certain online submissions
- Foreign documents require Apostille or Embassy attestation

Provide a helpful, concise response with accurate information about government documents and rules.`
)

// ReplyGenerator produces one assistant reply for one user message.
type ReplyGenerator interface {
	Reply(ctx context.Context, message string) (string, error)
}

// LLMService generates chat replies through the Gemini API.
type LLMService struct {
	client *genai.Client
	logger *zap.Logger
}

func NewLLMService(ctx context.Context, apiKey string, logger *zap.Logger) (*LLMService, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &LLMService{client: client, logger: logger}, nil
}

func (s *LLMService) Close() {
	if s.client != nil {
		if err := s.client.Close(); err != nil {
			s.logger.Warn("Error closing GenAI client", zap.Error(err))
		}
	}
}

func (s *LLMService) Reply(ctx context.Context, message string) (string, error) {
	model := s.client.GenerativeModel(defaultChatModelName)

	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(chatSystemInstruction)},
	}

	temp := float32(0.7)
	topP := float32(0.8)
	topK := int32(40)
	maxTokens := int32(1024)
	model.GenerationConfig = genai.GenerationConfig{
		Temperature:     &temp,
		TopP:            &topP,
		TopK:            &topK,
		MaxOutputTokens: &maxTokens,
	}

	resp, err := model.GenerateContent(ctx, genai.Text(message))
	if err != nil {
		return "", fmt.Errorf("gemini generate content failed: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini response had no candidates")
	}

	var responseText strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			responseText.WriteString(string(txt))
		} else {
			s.logger.Debug("Gemini response part was not text", zap.String("type", fmt.Sprintf("%T", part)))
		}
	}

	if responseText.Len() == 0 {
		return "", fmt.Errorf("gemini response contained no text parts")
	}
	return strings.TrimSpace(responseText.String()), nil
}
