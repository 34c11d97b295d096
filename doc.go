// Package cerebras is a client SDK for the Cerebras Inference API.
//
// The package provides typed request and response models, fluent request
// builders, and streaming support over server-sent events for both chat and
// plain text completions.
//
// # Quick Start
//
//	client, err := cerebras.FromEnv() // reads CEREBRAS_API_KEY
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	resp, err := client.ChatCompletion(ctx, cerebras.NewChatCompletion(cerebras.ModelLlama3_1_8B).
//		SystemMessage("You are a helpful assistant.").
//		UserMessage("What is the capital of France?").
//		MaxTokens(100).
//		Build())
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(resp.Content())
//
// # Streaming
//
// Streams are pull-based and single-consumer. Pull chunks with Recv for
// progressive display, or fold the whole stream with Collect:
//
//	stream, err := client.ChatCompletionStream(ctx, req)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer stream.Close()
//
//	for {
//		chunk, err := stream.Recv()
//		if err == io.EOF {
//			break
//		}
//		if err != nil {
//			log.Fatal(err)
//		}
//		for _, c := range chunk.Choices {
//			if c.Delta.Content != nil {
//				fmt.Print(*c.Delta.Content)
//			}
//		}
//	}
//
// # Error Handling
//
// Failures carry a typed *Error wrapping a sentinel; inspect with errors.Is
// or the helpers:
//
//	resp, err := client.ChatCompletion(ctx, req)
//	if errors.Is(err, cerebras.ErrRateLimited) {
//		time.Sleep(cerebras.RetryAfter(err))
//		// retry
//	}
//
// The SDK never retries on its own; backoff policy belongs to the caller.
package cerebras
