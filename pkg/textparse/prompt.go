// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package textparse

// systemPrompt instructs the model to emit one JSON object matching modelRecipe.
const systemPrompt = `You convert recipe text into JSON. Respond with a single JSON object and nothing else:
{
  "name": string,
  "description": string,
  "sourceUrl": string,
  "sourceName": string,
  "steps": [
    {
      "stepNumber": integer,
      "instructions": string,
      "ingredients": [
        {"amount": string, "description": string, "instructionRef": string}
      ]
    }
  ]
}
Rules:
- Keep the author's wording for instructions.
- Attach each ingredient to the first step that uses it.
- "amount" holds quantity and unit, empty if none is given.
- "instructionRef" is the word or phrase in the step's instructions that refers to the ingredient.
- Use empty strings for unknown fields. Never invent a source.`
