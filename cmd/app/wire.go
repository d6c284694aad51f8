//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/edubot/edubot-backend/internal/bootstrap"
	"github.com/edubot/edubot-backend/internal/domain/ingest"
	"github.com/edubot/edubot-backend/internal/domain/library"
	"github.com/edubot/edubot-backend/internal/domain/speech"
	"github.com/edubot/edubot-backend/internal/domain/studycards"
	"github.com/edubot/edubot-backend/internal/infra/config"
	"github.com/edubot/edubot-backend/internal/infra/sentences"
	httpiface "github.com/edubot/edubot-backend/internal/interface/http"
	"github.com/edubot/edubot-backend/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,

		providePipelineConfig,
		provideHFClient,
		provideOpenAIClient,
		sentences.NewPunktSplitter,
		provideSummarizer,
		provideEmbedder,
		provideAnswerExtractor,
		studycards.NewService,

		provideLibraryConfig,
		providePostgresPool,
		provideStudySetRepository,
		provideExporter,
		library.NewService,

		provideIngestConfig,
		provideBlobStorage,
		provideTextExtractor,
		provideGrammarCorrector,
		provideQueue,
		provideJobQueue,
		provideDocumentRepository,
		ingest.NewService,

		provideSpeechConfig,
		provideTranscriber,
		provideSynthesizer,
		speech.NewService,

		provideWatcher,

		wire.Bind(new(studycards.SentenceSplitter), new(*sentences.PunktSplitter)),
		wire.Bind(new(ingest.Generator), new(*studycards.Service)),
		wire.Bind(new(ingest.Librarian), new(*library.Service)),
		wire.Bind(new(speech.Generator), new(*studycards.Service)),
		wire.Bind(new(speech.Librarian), new(*library.Service)),
		wire.Bind(new(httpiface.GenerateService), new(*studycards.Service)),
		wire.Bind(new(httpiface.LibraryService), new(*library.Service)),
		wire.Bind(new(httpiface.IngestService), new(*ingest.Service)),
		wire.Bind(new(httpiface.SpeechService), new(*speech.Service)),

		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
