/*
Package rhymer indexes a pronunciation dictionary by phoneme sequence and
answers rhyme queries over it.

A Trie maps sequences of phoneme tokens to sets of words and supports union and
difference. A Rhymer loads a CMU style dictionary and phone table into four
tries: full pronunciations forwards and backwards, onsets through the first
vowel, and rhyme tails from the last vowel. Vowel tokens carry a trailing
stress digit (0, 1 or 2) that rhyme queries may require to agree.
*/
package rhymer
